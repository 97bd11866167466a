package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements ports.Store and ports.OutboxRepository on Postgres.
// Transactions run serializable and the escrow row is locked FOR UPDATE, so
// concurrent release/dispute calls on one record serialize their
// read-check-write sequences.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) GetEscrowForUpdate(ctx context.Context, escrowID string) (domain.EscrowRecord, error) {
	var m escrowModel
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("escrow_id = ?", strings.TrimSpace(escrowID)).
		Take(&m).Error
	if err != nil {
		return domain.EscrowRecord{}, translate(err)
	}
	return toDomainEscrow(m), nil
}

func (t *gormTx) GetEscrowByBookingID(ctx context.Context, bookingID string) (domain.EscrowRecord, error) {
	var m escrowModel
	err := t.db.WithContext(ctx).
		Where("booking_id = ?", strings.TrimSpace(bookingID)).
		Take(&m).Error
	if err != nil {
		return domain.EscrowRecord{}, translate(err)
	}
	return toDomainEscrow(m), nil
}

func (t *gormTx) CreateEscrow(ctx context.Context, rec domain.EscrowRecord) (domain.EscrowRecord, error) {
	if rec.EscrowID == "" {
		rec.EscrowID = uuid.NewString()
	}
	m := toEscrowModel(rec)
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.EscrowRecord{}, translate(err)
	}
	return rec, nil
}

func (t *gormTx) UpdateEscrow(ctx context.Context, rec domain.EscrowRecord) error {
	m := toEscrowModel(rec)
	res := t.db.WithContext(ctx).
		Model(&escrowModel{}).
		Where("escrow_id = ?", rec.EscrowID).
		Select("*").
		Omit("escrow_id", "created_at").
		Updates(m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *gormTx) CreateDispute(ctx context.Context, d domain.Dispute) error {
	m := toDisputeModel(d)
	return translate(t.db.WithContext(ctx).Create(&m).Error)
}

func (t *gormTx) InsertLedgerTransaction(ctx context.Context, lt domain.LedgerTransaction) error {
	m := ledgerTransactionModel{
		LedgerID:      lt.LedgerID,
		EscrowID:      lt.EscrowID,
		TransactionID: lt.TransactionID,
		BookingID:     lt.BookingID,
		CustomerID:    lt.CustomerID,
		LandownerID:   lt.LandownerID,
		AmountMinor:   lt.AmountMinor,
		TransferRef:   lt.TransferRef,
		CreatedAt:     lt.CreatedAt,
	}
	return translate(t.db.WithContext(ctx).Create(&m).Error)
}

func (t *gormTx) UpsertMirror(ctx context.Context, rec domain.TrackingRecord) error {
	m := toMirrorModel(rec)
	return translate(t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "escrow_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "attempts", "last_error", "last_attempt", "updated_at"}),
		}).
		Create(&m).Error)
}

func (t *gormTx) EnqueueOutbox(ctx context.Context, rec ports.OutboxRecord) error {
	m := toOutboxModel(rec)
	return translate(t.db.WithContext(ctx).Create(&m).Error)
}

func (s *Store) GetEscrow(ctx context.Context, escrowID string) (domain.EscrowRecord, error) {
	var m escrowModel
	err := s.db.WithContext(ctx).
		Where("escrow_id = ?", strings.TrimSpace(escrowID)).
		Take(&m).Error
	if err != nil {
		return domain.EscrowRecord{}, translate(err)
	}
	return toDomainEscrow(m), nil
}

func (s *Store) ListDueEscrows(ctx context.Context, now time.Time, limit int) ([]domain.EscrowRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []escrowModel
	err := s.db.WithContext(ctx).
		Where("released = ?", false).
		Where("dispute_status = ?", domain.DisputeStatusNone).
		Where("scheduled_release_date <= ?", now).
		Order("scheduled_release_date ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.EscrowRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainEscrow(m))
	}
	return out, nil
}

func (s *Store) GetDispute(ctx context.Context, disputeID string) (domain.Dispute, error) {
	var m disputeModel
	err := s.db.WithContext(ctx).
		Where("dispute_id = ?", strings.TrimSpace(disputeID)).
		Take(&m).Error
	if err != nil {
		return domain.Dispute{}, translate(err)
	}
	return toDomainDispute(m), nil
}

func (s *Store) GetMirrorByTransactionID(ctx context.Context, transactionID string) (domain.TrackingRecord, error) {
	var m trackingMirrorModel
	err := s.db.WithContext(ctx).
		Where("transaction_id = ?", strings.TrimSpace(transactionID)).
		Take(&m).Error
	if err != nil {
		return domain.TrackingRecord{}, translate(err)
	}
	return toDomainMirror(m), nil
}

func (s *Store) ListLedgerTransactions(ctx context.Context, escrowID string) ([]domain.LedgerTransaction, error) {
	var rows []ledgerTransactionModel
	err := s.db.WithContext(ctx).
		Where("escrow_id = ?", strings.TrimSpace(escrowID)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.LedgerTransaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.LedgerTransaction{
			LedgerID:      m.LedgerID,
			EscrowID:      m.EscrowID,
			TransactionID: m.TransactionID,
			BookingID:     m.BookingID,
			CustomerID:    m.CustomerID,
			LandownerID:   m.LandownerID,
			AmountMinor:   m.AmountMinor,
			TransferRef:   m.TransferRef,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// Outbox worker-side view.

func (s *Store) ListPending(ctx context.Context, limit int) ([]ports.OutboxRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := s.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Where("dead_lettered_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]ports.OutboxRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toOutboxRecord(m))
	}
	return out, nil
}

func (s *Store) MarkSent(ctx context.Context, recordID string, at time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("record_id = ?", recordID).
		Update("sent_at", at)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) MarkFailed(ctx context.Context, recordID, reason string, at time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("record_id = ?", recordID).
		Updates(map[string]any{
			"retry_count": gorm.Expr("retry_count + 1"),
			"last_error":  reason,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) MarkDeadLettered(ctx context.Context, recordID, reason string, at time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("record_id = ?", recordID).
		Updates(map[string]any{
			"dead_lettered_at": at,
			"last_error":       reason,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	default:
		return err
	}
}
