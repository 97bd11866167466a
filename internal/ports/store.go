package ports

import (
	"context"
	"time"

	"github.com/rigpark/escrow-service/internal/contracts"
	"github.com/rigpark/escrow-service/internal/domain"
)

// Tx is the view of the store inside one atomic transaction. Every write
// the ledger performs for a single operation goes through one Tx so the
// escrow record, its mirror row, the ledger transaction and the outbox
// entry commit or roll back together.
type Tx interface {
	// GetEscrowForUpdate reads the record and locks it for the duration of
	// the transaction; concurrent transactions on the same record serialize
	// behind the lock.
	GetEscrowForUpdate(ctx context.Context, escrowID string) (domain.EscrowRecord, error)
	GetEscrowByBookingID(ctx context.Context, bookingID string) (domain.EscrowRecord, error)
	// CreateEscrow persists a new record and returns it with the
	// store-assigned id filled in.
	CreateEscrow(ctx context.Context, rec domain.EscrowRecord) (domain.EscrowRecord, error)
	UpdateEscrow(ctx context.Context, rec domain.EscrowRecord) error
	CreateDispute(ctx context.Context, d domain.Dispute) error
	InsertLedgerTransaction(ctx context.Context, lt domain.LedgerTransaction) error
	UpsertMirror(ctx context.Context, rec domain.TrackingRecord) error
	EnqueueOutbox(ctx context.Context, rec OutboxRecord) error
}

// Store is the document store collaborator: serializable transactions plus
// the indexed reads the scheduler and query API need.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error

	GetEscrow(ctx context.Context, escrowID string) (domain.EscrowRecord, error)
	// ListDueEscrows returns undisputed, unreleased records whose scheduled
	// release date is at or before now.
	ListDueEscrows(ctx context.Context, now time.Time, limit int) ([]domain.EscrowRecord, error)
	GetDispute(ctx context.Context, disputeID string) (domain.Dispute, error)
	GetMirrorByTransactionID(ctx context.Context, transactionID string) (domain.TrackingRecord, error)
	ListLedgerTransactions(ctx context.Context, escrowID string) ([]domain.LedgerTransaction, error)
}

type OutboxRecord struct {
	RecordID     string
	EventClass   string
	Envelope     contracts.EventEnvelope
	RetryCount   int
	LastError    string
	CreatedAt    time.Time
	SentAt       *time.Time
	DeadLettered bool
}

// OutboxRepository is the worker-side view of the outbox. Enqueueing
// happens through Tx so the event rides the owning transaction.
type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkSent(ctx context.Context, recordID string, at time.Time) error
	MarkFailed(ctx context.Context, recordID, reason string, at time.Time) error
	MarkDeadLettered(ctx context.Context, recordID, reason string, at time.Time) error
}
