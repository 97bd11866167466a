package ports

import (
	"context"

	"github.com/rigpark/escrow-service/internal/contracts"
)

// EventPublisher delivers an envelope to the broker. Implementations route
// topics from the envelope's event type.
type EventPublisher interface {
	Publish(ctx context.Context, envelope contracts.EventEnvelope) error
}
