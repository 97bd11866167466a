package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
)

// CreateHold validates the booking parties and amount, authorizes the
// payment against the gateway, then persists the escrow record and its
// tracking mirror in one transaction. Nothing persists until the
// authorization succeeds, so a gateway rejection leaves no partial state.
func (s *Service) CreateHold(ctx context.Context, actor Actor, input CreateHoldInput) (CreateHoldResult, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return CreateHoldResult{}, domain.ErrUnauthorized
	}
	input.BookingID = strings.TrimSpace(input.BookingID)
	input.CustomerID = strings.TrimSpace(input.CustomerID)
	input.LandownerID = strings.TrimSpace(input.LandownerID)
	if input.BookingID == "" || input.CustomerID == "" || input.LandownerID == "" {
		return CreateHoldResult{}, domain.ErrInvalidInput
	}
	if input.AmountMinor <= 0 || input.AmountMinor > s.cfg.MaxAmountMinor {
		return CreateHoldResult{}, fmt.Errorf("%w: amount must be in (0, %d]", domain.ErrInvalidInput, s.cfg.MaxAmountMinor)
	}

	customer, err := s.directory.GetCustomer(ctx, input.CustomerID)
	if err != nil || !customer.Verified {
		return CreateHoldResult{}, fmt.Errorf("%w: customer %s", domain.ErrUnknownParty, input.CustomerID)
	}
	landowner, err := s.directory.GetLandowner(ctx, input.LandownerID)
	if err != nil || !landowner.Verified {
		return CreateHoldResult{}, fmt.Errorf("%w: landowner %s", domain.ErrUnknownParty, input.LandownerID)
	}

	riskLevel := 0
	if s.risk != nil {
		if level, err := s.risk.Score(ctx, ports.RiskInput{
			BookingID:   input.BookingID,
			CustomerID:  input.CustomerID,
			LandownerID: input.LandownerID,
			AmountMinor: input.AmountMinor,
		}); err == nil {
			riskLevel = level
		}
	}

	now := s.nowFn()
	transactionID := domain.NewTransactionID(input.BookingID, now)

	holdRef, err := s.gateway.Authorize(ctx, input.AmountMinor, input.CustomerID)
	if err != nil {
		return CreateHoldResult{}, &domain.GatewayError{Op: "authorize", Err: err}
	}

	rec := domain.EscrowRecord{
		BookingID:      input.BookingID,
		CustomerID:     input.CustomerID,
		LandownerID:    input.LandownerID,
		AmountMinor:    input.AmountMinor,
		TransactionID:  transactionID,
		GatewayHoldRef: holdRef,
		Status:         domain.StatusHeld,
		DisputeStatus:  domain.DisputeStatusNone,
		SecurityChecks: domain.SecurityChecks{
			CustomerVerified:  customer.Verified,
			LandownerVerified: landowner.Verified,
			AmountValidated:   true,
			RiskLevel:         riskLevel,
		},
		AuditLog: []domain.AuditEntry{
			{Action: domain.AuditActionCreated, Timestamp: now, Details: "hold authorized"},
		},
		CreatedAt:            now,
		ScheduledReleaseDate: now.AddDate(0, 0, s.cfg.HoldDays),
		UpdatedAt:            now,
	}

	err = s.store.InTx(ctx, func(tx ports.Tx) error {
		if existing, err := tx.GetEscrowByBookingID(ctx, input.BookingID); err == nil && existing.EscrowID != "" {
			return fmt.Errorf("%w: booking %s already has an escrow", domain.ErrConflict, input.BookingID)
		}
		created, err := tx.CreateEscrow(ctx, rec)
		if err != nil {
			return err
		}
		rec = created
		if err := tx.UpsertMirror(ctx, mirrorOf(rec, now)); err != nil {
			return err
		}
		return s.enqueueHoldCreated(ctx, tx, rec, actor.RequestID, now)
	})
	if err != nil {
		return CreateHoldResult{}, err
	}

	s.logger.InfoContext(ctx, "escrow hold created",
		"module", "application",
		"operation", "create_hold",
		"outcome", "success",
		"escrow_id", rec.EscrowID,
		"booking_id", rec.BookingID,
		"transaction_id", rec.TransactionID,
	)
	return CreateHoldResult{
		EscrowID:       rec.EscrowID,
		GatewayHoldRef: rec.GatewayHoldRef,
		TransactionID:  rec.TransactionID,
		ReleaseDue:     rec.ScheduledReleaseDate,
	}, nil
}

// Release captures the hold and transfers the funds to the landowner,
// guaranteeing the transfer happens at most once per record. The
// precondition checks and the mutation run under one locked transaction so
// concurrent calls serialize against the record.
func (s *Service) Release(ctx context.Context, actor Actor, escrowID string) (ReleaseResult, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return ReleaseResult{}, domain.ErrUnauthorized
	}
	return s.release(ctx, actor, escrowID, false)
}

// ForceRelease is the operator override for records stuck past the retry
// budget: it skips the attempt budget and the holding-period check but
// still refuses released and disputed records.
func (s *Service) ForceRelease(ctx context.Context, actor Actor, escrowID string) (ReleaseResult, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return ReleaseResult{}, domain.ErrUnauthorized
	}
	role := strings.ToLower(strings.TrimSpace(actor.Role))
	if role != "admin" && role != "ops" {
		return ReleaseResult{}, domain.ErrForbidden
	}
	return s.release(ctx, actor, escrowID, true)
}

func (s *Service) release(ctx context.Context, actor Actor, escrowID string, force bool) (ReleaseResult, error) {
	escrowID = strings.TrimSpace(escrowID)
	if escrowID == "" {
		return ReleaseResult{}, domain.ErrInvalidInput
	}

	var (
		transferRef   string
		gatewayErr    error
		transactionID string
	)
	err := s.store.InTx(ctx, func(tx ports.Tx) error {
		rec, err := tx.GetEscrowForUpdate(ctx, escrowID)
		if err != nil {
			return err
		}
		transactionID = rec.TransactionID
		if rec.Released {
			return domain.ErrAlreadyReleased
		}
		if rec.DisputeStatus == domain.DisputeStatusPending {
			return domain.ErrDisputePending
		}
		if !force && rec.Tracking.Attempts >= s.cfg.MaxRetryAttempts {
			return domain.ErrRetriesExhausted
		}
		now := s.nowFn()
		if !force && now.Before(rec.ScheduledReleaseDate) {
			return domain.ErrHoldingPeriod
		}

		// Gateway legs run before the commit so the final write reflects
		// their outcome; the row lock keeps a second caller from reaching
		// this point until this transaction finishes.
		transferRef, gatewayErr = s.captureAndTransfer(ctx, rec)

		rec.Tracking.Attempts++
		rec.Tracking.LastAttempt = &now
		rec.UpdatedAt = now

		if gatewayErr != nil {
			rec.Tracking.LastError = gatewayErr.Error()
			rec.AuditLog = append(rec.AuditLog, domain.AuditEntry{
				Action:    domain.AuditActionReleaseFailed,
				Timestamp: now,
				Details:   gatewayErr.Error(),
			})
			if err := tx.UpdateEscrow(ctx, rec); err != nil {
				return err
			}
			if err := tx.UpsertMirror(ctx, mirrorOf(rec, now)); err != nil {
				return err
			}
			// Commit the attempt bookkeeping; the gateway error is
			// surfaced to the caller after the transaction.
			return s.enqueueReleaseFailed(ctx, tx, rec, actor.RequestID, now)
		}

		rec.Tracking.LastError = ""
		rec.Released = true
		rec.ReleasedAt = &now
		rec.Status = domain.StatusReleased
		rec.TransferRef = transferRef
		action := domain.AuditActionReleased
		if force {
			action = domain.AuditActionForceReleased
		}
		rec.AuditLog = append(rec.AuditLog, domain.AuditEntry{
			Action:    action,
			Timestamp: now,
			Details:   "transfer " + transferRef,
		})
		if err := tx.UpdateEscrow(ctx, rec); err != nil {
			return err
		}
		if err := tx.InsertLedgerTransaction(ctx, domain.LedgerTransaction{
			LedgerID:      uuid.NewString(),
			EscrowID:      rec.EscrowID,
			TransactionID: rec.TransactionID,
			BookingID:     rec.BookingID,
			CustomerID:    rec.CustomerID,
			LandownerID:   rec.LandownerID,
			AmountMinor:   rec.AmountMinor,
			TransferRef:   transferRef,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		if err := tx.UpsertMirror(ctx, mirrorOf(rec, now)); err != nil {
			return err
		}
		return s.enqueueReleased(ctx, tx, rec, actor.RequestID, now)
	})
	if err != nil {
		return ReleaseResult{}, err
	}
	s.invalidateMirror(ctx, transactionID)
	if gatewayErr != nil {
		return ReleaseResult{}, gatewayErr
	}
	return ReleaseResult{Released: true, TransferRef: transferRef}, nil
}

func (s *Service) captureAndTransfer(ctx context.Context, rec domain.EscrowRecord) (string, error) {
	landowner, err := s.directory.GetLandowner(ctx, rec.LandownerID)
	if err != nil {
		return "", fmt.Errorf("resolve payout destination: %w", err)
	}
	if err := s.gateway.Capture(ctx, rec.GatewayHoldRef); err != nil {
		return "", &domain.GatewayError{Op: "capture", Err: err}
	}
	transferRef, err := s.gateway.Transfer(ctx, rec.AmountMinor, landowner.PayoutDestination, rec.BookingID)
	if err != nil {
		return "", &domain.GatewayError{Op: "transfer", Err: err}
	}
	return transferRef, nil
}

// Dispute freezes the release pipeline for the escrow. A pending dispute is
// a hard block on release until an external process clears it.
func (s *Service) Dispute(ctx context.Context, actor Actor, escrowID string, input DisputeInput) (DisputeResult, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return DisputeResult{}, domain.ErrUnauthorized
	}
	escrowID = strings.TrimSpace(escrowID)
	if escrowID == "" || strings.TrimSpace(input.Reason) == "" {
		return DisputeResult{}, domain.ErrInvalidInput
	}
	raisedBy := strings.TrimSpace(input.RaisedBy)
	if raisedBy == "" {
		raisedBy = actor.SubjectID
	}

	var (
		disputeID     string
		transactionID string
	)
	err := s.store.InTx(ctx, func(tx ports.Tx) error {
		rec, err := tx.GetEscrowForUpdate(ctx, escrowID)
		if err != nil {
			return err
		}
		transactionID = rec.TransactionID
		if rec.Released {
			return domain.ErrAlreadyReleased
		}
		if rec.DisputeStatus != domain.DisputeStatusNone {
			return domain.ErrDisputeExists
		}

		now := s.nowFn()
		disputeID = uuid.NewString()
		rec.DisputeStatus = domain.DisputeStatusPending
		rec.DisputeID = disputeID
		rec.UpdatedAt = now
		rec.AuditLog = append(rec.AuditLog, domain.AuditEntry{
			Action:    domain.AuditActionDisputeCreated,
			Timestamp: now,
			Details:   "dispute " + disputeID,
		})
		if err := tx.UpdateEscrow(ctx, rec); err != nil {
			return err
		}

		dispute := domain.Dispute{
			DisputeID:   disputeID,
			EscrowID:    rec.EscrowID,
			BookingID:   rec.BookingID,
			AmountMinor: rec.AmountMinor,
			RaisedBy:    raisedBy,
			Reason:      strings.TrimSpace(input.Reason),
			Description: strings.TrimSpace(input.Description),
			Status:      domain.DisputeOpen,
			Timeline: []domain.DisputeTimelineEntry{
				{Event: domain.AuditActionDisputeCreated, Timestamp: now, Details: strings.TrimSpace(input.Reason)},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if evidence := strings.TrimSpace(input.Evidence); evidence != "" {
			dispute.Evidence = append(dispute.Evidence, domain.DisputeEvidence{
				Description: evidence,
				SubmittedAt: now,
			})
		}
		if err := tx.CreateDispute(ctx, dispute); err != nil {
			return err
		}
		if err := tx.UpsertMirror(ctx, mirrorOf(rec, now)); err != nil {
			return err
		}
		return s.enqueueDisputeCreated(ctx, tx, rec, dispute, actor.RequestID, now)
	})
	if err != nil {
		return DisputeResult{}, err
	}
	s.invalidateMirror(ctx, transactionID)
	return DisputeResult{DisputeID: disputeID}, nil
}

func (s *Service) GetEscrow(ctx context.Context, actor Actor, escrowID string) (domain.EscrowRecord, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.EscrowRecord{}, domain.ErrUnauthorized
	}
	escrowID = strings.TrimSpace(escrowID)
	if escrowID == "" {
		return domain.EscrowRecord{}, domain.ErrInvalidInput
	}
	return s.store.GetEscrow(ctx, escrowID)
}

func (s *Service) GetDispute(ctx context.Context, actor Actor, disputeID string) (domain.Dispute, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Dispute{}, domain.ErrUnauthorized
	}
	disputeID = strings.TrimSpace(disputeID)
	if disputeID == "" {
		return domain.Dispute{}, domain.ErrInvalidInput
	}
	return s.store.GetDispute(ctx, disputeID)
}

// GetTracking serves the mirror projection, preferring the read cache. The
// cache is eventually consistent; writes invalidate it best-effort.
func (s *Service) GetTracking(ctx context.Context, actor Actor, transactionID string) (domain.TrackingRecord, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.TrackingRecord{}, domain.ErrUnauthorized
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return domain.TrackingRecord{}, domain.ErrInvalidInput
	}
	if s.mirrorCache != nil {
		if cached, err := s.mirrorCache.Get(ctx, transactionID); err == nil && cached != nil {
			return *cached, nil
		}
	}
	rec, err := s.store.GetMirrorByTransactionID(ctx, transactionID)
	if err != nil {
		return domain.TrackingRecord{}, err
	}
	if s.mirrorCache != nil {
		_ = s.mirrorCache.Set(ctx, rec, s.cfg.MirrorCacheTTL)
	}
	return rec, nil
}

func (s *Service) invalidateMirror(ctx context.Context, transactionID string) {
	if s.mirrorCache == nil || transactionID == "" {
		return
	}
	if err := s.mirrorCache.Invalidate(ctx, transactionID); err != nil {
		s.logger.WarnContext(ctx, "mirror cache invalidation failed",
			"module", "application",
			"operation", "invalidate_mirror",
			"outcome", "failure",
			"transaction_id", transactionID,
			"error", err,
		)
	}
}

func mirrorOf(rec domain.EscrowRecord, now time.Time) domain.TrackingRecord {
	status := domain.MirrorStatusPending
	switch {
	case rec.Released:
		status = domain.MirrorStatusCompleted
	case rec.DisputeStatus == domain.DisputeStatusPending:
		status = domain.MirrorStatusDisputed
	}
	return domain.TrackingRecord{
		EscrowID:      rec.EscrowID,
		TransactionID: rec.TransactionID,
		BookingID:     rec.BookingID,
		Status:        status,
		Attempts:      rec.Tracking.Attempts,
		LastError:     rec.Tracking.LastError,
		LastAttempt:   rec.Tracking.LastAttempt,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     now,
	}
}
