// Package memory implements the store ports on in-process maps guarded by a
// single mutex. Holding the mutex for the whole transaction gives the same
// serializable read-check-write discipline the postgres adapter gets from
// row locks, which makes this the store of record for tests and local runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
)

type Store struct {
	mu          sync.Mutex
	escrows     map[string]domain.EscrowRecord
	byBooking   map[string]string
	disputes    map[string]domain.Dispute
	ledger      []domain.LedgerTransaction
	mirrors     map[string]domain.TrackingRecord
	outbox      map[string]ports.OutboxRecord
	outboxOrder []string
}

func NewStore() *Store {
	return &Store{
		escrows:   map[string]domain.EscrowRecord{},
		byBooking: map[string]string{},
		disputes:  map[string]domain.Dispute{},
		mirrors:   map[string]domain.TrackingRecord{},
		outbox:    map[string]ports.OutboxRecord{},
	}
}

type snapshot struct {
	escrows     map[string]domain.EscrowRecord
	byBooking   map[string]string
	disputes    map[string]domain.Dispute
	ledger      []domain.LedgerTransaction
	mirrors     map[string]domain.TrackingRecord
	outbox      map[string]ports.OutboxRecord
	outboxOrder []string
}

// InTx serializes all transactions behind the store mutex and restores the
// pre-transaction snapshot when fn fails, so partial writes never survive.
func (s *Store) InTx(_ context.Context, fn func(tx ports.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&memTx{store: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		escrows:     make(map[string]domain.EscrowRecord, len(s.escrows)),
		byBooking:   make(map[string]string, len(s.byBooking)),
		disputes:    make(map[string]domain.Dispute, len(s.disputes)),
		ledger:      append([]domain.LedgerTransaction(nil), s.ledger...),
		mirrors:     make(map[string]domain.TrackingRecord, len(s.mirrors)),
		outbox:      make(map[string]ports.OutboxRecord, len(s.outbox)),
		outboxOrder: append([]string(nil), s.outboxOrder...),
	}
	for k, v := range s.escrows {
		snap.escrows[k] = cloneEscrow(v)
	}
	for k, v := range s.byBooking {
		snap.byBooking[k] = v
	}
	for k, v := range s.disputes {
		snap.disputes[k] = cloneDispute(v)
	}
	for k, v := range s.mirrors {
		snap.mirrors[k] = v
	}
	for k, v := range s.outbox {
		snap.outbox[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.escrows = snap.escrows
	s.byBooking = snap.byBooking
	s.disputes = snap.disputes
	s.ledger = snap.ledger
	s.mirrors = snap.mirrors
	s.outbox = snap.outbox
	s.outboxOrder = snap.outboxOrder
}

type memTx struct {
	store *Store
}

func (t *memTx) GetEscrowForUpdate(_ context.Context, escrowID string) (domain.EscrowRecord, error) {
	rec, ok := t.store.escrows[strings.TrimSpace(escrowID)]
	if !ok {
		return domain.EscrowRecord{}, domain.ErrNotFound
	}
	return cloneEscrow(rec), nil
}

func (t *memTx) GetEscrowByBookingID(_ context.Context, bookingID string) (domain.EscrowRecord, error) {
	id, ok := t.store.byBooking[strings.TrimSpace(bookingID)]
	if !ok {
		return domain.EscrowRecord{}, domain.ErrNotFound
	}
	return cloneEscrow(t.store.escrows[id]), nil
}

func (t *memTx) CreateEscrow(_ context.Context, rec domain.EscrowRecord) (domain.EscrowRecord, error) {
	if _, ok := t.store.byBooking[rec.BookingID]; ok {
		return domain.EscrowRecord{}, domain.ErrConflict
	}
	if rec.EscrowID == "" {
		rec.EscrowID = uuid.NewString()
	}
	if _, ok := t.store.escrows[rec.EscrowID]; ok {
		return domain.EscrowRecord{}, domain.ErrConflict
	}
	t.store.escrows[rec.EscrowID] = cloneEscrow(rec)
	t.store.byBooking[rec.BookingID] = rec.EscrowID
	return rec, nil
}

func (t *memTx) UpdateEscrow(_ context.Context, rec domain.EscrowRecord) error {
	if _, ok := t.store.escrows[rec.EscrowID]; !ok {
		return domain.ErrNotFound
	}
	t.store.escrows[rec.EscrowID] = cloneEscrow(rec)
	return nil
}

func (t *memTx) CreateDispute(_ context.Context, d domain.Dispute) error {
	if _, ok := t.store.disputes[d.DisputeID]; ok {
		return domain.ErrConflict
	}
	t.store.disputes[d.DisputeID] = cloneDispute(d)
	return nil
}

func (t *memTx) InsertLedgerTransaction(_ context.Context, lt domain.LedgerTransaction) error {
	t.store.ledger = append(t.store.ledger, lt)
	return nil
}

func (t *memTx) UpsertMirror(_ context.Context, rec domain.TrackingRecord) error {
	t.store.mirrors[rec.TransactionID] = rec
	return nil
}

func (t *memTx) EnqueueOutbox(_ context.Context, rec ports.OutboxRecord) error {
	if _, ok := t.store.outbox[rec.RecordID]; ok {
		return domain.ErrConflict
	}
	t.store.outbox[rec.RecordID] = rec
	t.store.outboxOrder = append(t.store.outboxOrder, rec.RecordID)
	return nil
}

func (s *Store) GetEscrow(_ context.Context, escrowID string) (domain.EscrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.escrows[strings.TrimSpace(escrowID)]
	if !ok {
		return domain.EscrowRecord{}, domain.ErrNotFound
	}
	return cloneEscrow(rec), nil
}

func (s *Store) ListDueEscrows(_ context.Context, now time.Time, limit int) ([]domain.EscrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := make([]domain.EscrowRecord, 0)
	for _, rec := range s.escrows {
		if rec.Released || rec.DisputeStatus == domain.DisputeStatusPending {
			continue
		}
		if rec.ScheduledReleaseDate.After(now) {
			continue
		}
		out = append(out, cloneEscrow(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledReleaseDate.Before(out[j].ScheduledReleaseDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetDispute(_ context.Context, disputeID string) (domain.Dispute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.disputes[strings.TrimSpace(disputeID)]
	if !ok {
		return domain.Dispute{}, domain.ErrNotFound
	}
	return cloneDispute(d), nil
}

func (s *Store) GetMirrorByTransactionID(_ context.Context, transactionID string) (domain.TrackingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.mirrors[strings.TrimSpace(transactionID)]
	if !ok {
		return domain.TrackingRecord{}, domain.ErrNotFound
	}
	return rec, nil
}

func (s *Store) ListLedgerTransactions(_ context.Context, escrowID string) ([]domain.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(escrowID)
	out := make([]domain.LedgerTransaction, 0)
	for _, lt := range s.ledger {
		if lt.EscrowID == id {
			out = append(out, lt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Outbox worker-side view.

func (s *Store) ListPending(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := make([]ports.OutboxRecord, 0, limit)
	for _, id := range s.outboxOrder {
		rec, ok := s.outbox[id]
		if !ok || rec.SentAt != nil || rec.DeadLettered {
			continue
		}
		out = append(out, rec)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkSent(_ context.Context, recordID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.outbox[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.SentAt = &at
	s.outbox[recordID] = rec
	return nil
}

func (s *Store) MarkFailed(_ context.Context, recordID, reason string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.outbox[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.RetryCount++
	rec.LastError = reason
	s.outbox[recordID] = rec
	return nil
}

func (s *Store) MarkDeadLettered(_ context.Context, recordID, reason string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.outbox[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.DeadLettered = true
	rec.LastError = reason
	s.outbox[recordID] = rec
	return nil
}

func cloneEscrow(rec domain.EscrowRecord) domain.EscrowRecord {
	out := rec
	out.AuditLog = append([]domain.AuditEntry(nil), rec.AuditLog...)
	if rec.ReleasedAt != nil {
		t := *rec.ReleasedAt
		out.ReleasedAt = &t
	}
	if rec.Tracking.LastAttempt != nil {
		t := *rec.Tracking.LastAttempt
		out.Tracking.LastAttempt = &t
	}
	return out
}

func cloneDispute(d domain.Dispute) domain.Dispute {
	out := d
	out.Evidence = append([]domain.DisputeEvidence(nil), d.Evidence...)
	out.Timeline = append([]domain.DisputeTimelineEntry(nil), d.Timeline...)
	return out
}
