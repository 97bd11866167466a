package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/rigpark/escrow-service/internal/ports"
)

// OutboxWorker drains unsent outbox records into the broker. Delivery is
// decoupled from the transactional write so a broker outage never blocks
// the ledger.
type OutboxWorker struct {
	logger     *slog.Logger
	outbox     ports.OutboxRepository
	publisher  ports.EventPublisher
	interval   time.Duration
	batchSize  int
	maxRetries int
}

func NewOutboxWorker(logger *slog.Logger, outbox ports.OutboxRepository, publisher ports.EventPublisher, interval time.Duration, batchSize, maxRetries int) *OutboxWorker {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &OutboxWorker{
		logger:     logger,
		outbox:     outbox,
		publisher:  publisher,
		interval:   interval,
		batchSize:  batchSize,
		maxRetries: maxRetries,
	}
}

// Run executes the periodic flush loop until context cancellation.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.ProcessOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "outbox iteration failed",
				"module", "events.outbox_worker",
				"operation", "process_once",
				"outcome", "failure",
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *OutboxWorker) ProcessOnce(ctx context.Context) error {
	records, err := w.outbox.ListPending(ctx, w.batchSize)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, rec := range records {
		if rec.RetryCount >= w.maxRetries {
			_ = w.outbox.MarkDeadLettered(ctx, rec.RecordID, "retry threshold reached before publish", now)
			w.logger.ErrorContext(ctx, "outbox record dead-lettered",
				"module", "events.outbox_worker",
				"operation", "publish_event",
				"outcome", "failure",
				"record_id", rec.RecordID,
				"event_type", rec.Envelope.EventType,
				"retry_count", rec.RetryCount,
			)
			continue
		}
		if err := w.publisher.Publish(ctx, rec.Envelope); err != nil {
			_ = w.outbox.MarkFailed(ctx, rec.RecordID, err.Error(), now)
			w.logger.WarnContext(ctx, "outbox publish failed; retry scheduled",
				"module", "events.outbox_worker",
				"operation", "publish_event",
				"outcome", "failure",
				"record_id", rec.RecordID,
				"event_type", rec.Envelope.EventType,
				"error", err,
			)
			continue
		}
		if err := w.outbox.MarkSent(ctx, rec.RecordID, now); err != nil {
			return err
		}
	}
	return nil
}
