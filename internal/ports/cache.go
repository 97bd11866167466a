package ports

import (
	"context"
	"time"

	"github.com/rigpark/escrow-service/internal/domain"
)

// MirrorCache is a read-side cache for tracking-mirror lookups. It is never
// consulted on the write path; the store transaction remains the only
// synchronization primitive.
type MirrorCache interface {
	// Get returns nil with no error on a cache miss.
	Get(ctx context.Context, transactionID string) (*domain.TrackingRecord, error)
	Set(ctx context.Context, rec domain.TrackingRecord, ttl time.Duration) error
	Invalidate(ctx context.Context, transactionID string) error
}
