package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rigpark/escrow-service/internal/contracts"
)

// LoggingPublisher stands in for the broker in environments without one.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, envelope contracts.EventEnvelope) error {
	p.logger.InfoContext(ctx, "published event",
		"module", "events",
		"operation", "publish",
		"event_type", envelope.EventType,
		"event_id", envelope.EventID,
		"partition_key", envelope.PartitionKey,
	)
	return nil
}

// MemoryPublisher records envelopes for tests.
type MemoryPublisher struct {
	mu        sync.Mutex
	envelopes []contracts.EventEnvelope
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(_ context.Context, envelope contracts.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.envelopes = append(p.envelopes, envelope)
	return nil
}

func (p *MemoryPublisher) Envelopes() []contracts.EventEnvelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]contracts.EventEnvelope(nil), p.envelopes...)
}
