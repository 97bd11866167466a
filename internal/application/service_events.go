package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rigpark/escrow-service/internal/contracts"
	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
)

// Lifecycle events ride the owning store transaction through the outbox;
// the flush worker delivers them to the broker afterwards.

func (s *Service) enqueueEvent(ctx context.Context, tx ports.Tx, eventType, traceID string, data any, escrowID string, now time.Time) error {
	if !domain.IsCanonicalEmittedEvent(eventType) {
		return domain.ErrInvalidInput
	}
	b, err := json.Marshal(data)
	if err != nil {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(traceID) == "" {
		traceID = uuid.NewString()
	}
	env := contracts.EventEnvelope{
		EventID:          uuid.NewString(),
		EventType:        eventType,
		EventClass:       domain.CanonicalEventClass(eventType),
		OccurredAt:       now,
		PartitionKeyPath: domain.CanonicalPartitionKeyPath(eventType),
		PartitionKey:     escrowID,
		SourceService:    s.cfg.ServiceName,
		TraceID:          traceID,
		SchemaVersion:    "v1",
		Data:             b,
	}
	return tx.EnqueueOutbox(ctx, ports.OutboxRecord{
		RecordID:   uuid.NewString(),
		EventClass: env.EventClass,
		Envelope:   env,
		CreatedAt:  now,
	})
}

func (s *Service) enqueueHoldCreated(ctx context.Context, tx ports.Tx, rec domain.EscrowRecord, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, tx, domain.EventEscrowHoldCreated, traceID, contracts.EscrowHoldCreatedPayload{
		EscrowID:      rec.EscrowID,
		BookingID:     rec.BookingID,
		CustomerID:    rec.CustomerID,
		LandownerID:   rec.LandownerID,
		AmountMinor:   rec.AmountMinor,
		TransactionID: rec.TransactionID,
		ReleaseDue:    rec.ScheduledReleaseDate.UTC().Format(time.RFC3339),
		HeldAt:        rec.CreatedAt.UTC().Format(time.RFC3339),
	}, rec.EscrowID, now)
}

func (s *Service) enqueueReleased(ctx context.Context, tx ports.Tx, rec domain.EscrowRecord, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, tx, domain.EventEscrowReleased, traceID, contracts.EscrowReleasedPayload{
		EscrowID:      rec.EscrowID,
		BookingID:     rec.BookingID,
		TransactionID: rec.TransactionID,
		AmountMinor:   rec.AmountMinor,
		TransferRef:   rec.TransferRef,
		ReleasedAt:    now.UTC().Format(time.RFC3339),
	}, rec.EscrowID, now)
}

func (s *Service) enqueueReleaseFailed(ctx context.Context, tx ports.Tx, rec domain.EscrowRecord, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, tx, domain.EventEscrowReleaseFailed, traceID, contracts.EscrowReleaseFailedPayload{
		EscrowID: rec.EscrowID,
		Attempts: rec.Tracking.Attempts,
		Error:    rec.Tracking.LastError,
		FailedAt: now.UTC().Format(time.RFC3339),
	}, rec.EscrowID, now)
}

func (s *Service) enqueueDisputeCreated(ctx context.Context, tx ports.Tx, rec domain.EscrowRecord, dispute domain.Dispute, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, tx, domain.EventEscrowDisputeCreated, traceID, contracts.EscrowDisputeCreatedPayload{
		EscrowID:   rec.EscrowID,
		DisputeID:  dispute.DisputeID,
		BookingID:  rec.BookingID,
		RaisedBy:   dispute.RaisedBy,
		Reason:     dispute.Reason,
		DisputedAt: now.UTC().Format(time.RFC3339),
	}, rec.EscrowID, now)
}
