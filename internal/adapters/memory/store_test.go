package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
)

func seedRecord(bookingID string, due time.Time) domain.EscrowRecord {
	return domain.EscrowRecord{
		BookingID:            bookingID,
		CustomerID:           "cust-1",
		LandownerID:          "land-1",
		AmountMinor:          900,
		TransactionID:        "TXN-" + bookingID,
		Status:               domain.StatusHeld,
		DisputeStatus:        domain.DisputeStatusNone,
		CreatedAt:            due.AddDate(0, 0, -5),
		ScheduledReleaseDate: due,
		UpdatedAt:            due.AddDate(0, 0, -5),
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	var escrowID string
	err := store.InTx(context.Background(), func(tx ports.Tx) error {
		created, err := tx.CreateEscrow(context.Background(), seedRecord("bk-1", now))
		if err != nil {
			return err
		}
		escrowID = created.EscrowID
		return nil
	})
	if err != nil {
		t.Fatalf("seed tx: %v", err)
	}

	boom := fmt.Errorf("mid-transaction failure")
	err = store.InTx(context.Background(), func(tx ports.Tx) error {
		rec, err := tx.GetEscrowForUpdate(context.Background(), escrowID)
		if err != nil {
			return err
		}
		rec.Released = true
		rec.Status = domain.StatusReleased
		if err := tx.UpdateEscrow(context.Background(), rec); err != nil {
			return err
		}
		if err := tx.InsertLedgerTransaction(context.Background(), domain.LedgerTransaction{LedgerID: "l1", EscrowID: escrowID}); err != nil {
			return err
		}
		if err := tx.UpsertMirror(context.Background(), domain.TrackingRecord{TransactionID: rec.TransactionID, Status: domain.MirrorStatusCompleted}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	rec, err := store.GetEscrow(context.Background(), escrowID)
	if err != nil {
		t.Fatalf("GetEscrow: %v", err)
	}
	if rec.Released || rec.Status != domain.StatusHeld {
		t.Fatalf("escrow mutation survived rollback: %+v", rec)
	}
	ledger, _ := store.ListLedgerTransactions(context.Background(), escrowID)
	if len(ledger) != 0 {
		t.Fatalf("ledger write survived rollback: %+v", ledger)
	}
	if _, err := store.GetMirrorByTransactionID(context.Background(), rec.TransactionID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("mirror write survived rollback: %v", err)
	}
}

func TestCreateEscrowRejectsDuplicateBooking(t *testing.T) {
	store := NewStore()
	now := time.Now().UTC()

	err := store.InTx(context.Background(), func(tx ports.Tx) error {
		_, err := tx.CreateEscrow(context.Background(), seedRecord("bk-dup", now))
		return err
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	err = store.InTx(context.Background(), func(tx ports.Tx) error {
		_, err := tx.CreateEscrow(context.Background(), seedRecord("bk-dup", now))
		return err
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate create: got %v, want ErrConflict", err)
	}
}

func TestListDueEscrowsFiltersAndOrders(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	records := []domain.EscrowRecord{
		seedRecord("bk-late", now.Add(-48*time.Hour)),
		seedRecord("bk-early", now.Add(-72*time.Hour)),
		seedRecord("bk-future", now.Add(24*time.Hour)),
	}
	disputed := seedRecord("bk-disputed", now.Add(-24*time.Hour))
	disputed.DisputeStatus = domain.DisputeStatusPending
	released := seedRecord("bk-released", now.Add(-24*time.Hour))
	released.Released = true
	records = append(records, disputed, released)

	err := store.InTx(context.Background(), func(tx ports.Tx) error {
		for _, rec := range records {
			if _, err := tx.CreateEscrow(context.Background(), rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	due, err := store.ListDueEscrows(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("ListDueEscrows: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due count: got %d, want 2", len(due))
	}
	if due[0].BookingID != "bk-early" || due[1].BookingID != "bk-late" {
		t.Fatalf("due order: %s, %s", due[0].BookingID, due[1].BookingID)
	}

	limited, err := store.ListDueEscrows(context.Background(), now, 1)
	if err != nil {
		t.Fatalf("ListDueEscrows limited: %v", err)
	}
	if len(limited) != 1 || limited[0].BookingID != "bk-early" {
		t.Fatalf("limit not applied: %+v", limited)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	store := NewStore()
	now := time.Now().UTC()

	err := store.InTx(context.Background(), func(tx ports.Tx) error {
		for i := 0; i < 3; i++ {
			if err := tx.EnqueueOutbox(context.Background(), ports.OutboxRecord{
				RecordID:  fmt.Sprintf("rec-%d", i),
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := store.MarkSent(context.Background(), "rec-0", now); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if err := store.MarkFailed(context.Background(), "rec-1", "broker unavailable", now); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := store.MarkDeadLettered(context.Background(), "rec-2", "poison", now); err != nil {
		t.Fatalf("MarkDeadLettered: %v", err)
	}

	pending, err := store.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 || pending[0].RecordID != "rec-1" {
		t.Fatalf("pending: %+v", pending)
	}
	if pending[0].RetryCount != 1 || pending[0].LastError != "broker unavailable" {
		t.Fatalf("failure bookkeeping: %+v", pending[0])
	}
}
