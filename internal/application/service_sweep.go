package application

import (
	"context"
	"strings"

	"github.com/rigpark/escrow-service/internal/domain"
)

// SweepDueReleases scans for due, undisputed holds and drives a release for
// each one. Every candidate is settled individually: one record's failure
// never aborts the batch or hides the outcome of the others, and the caller
// gets aggregate counts instead of an error.
func (s *Service) SweepDueReleases(ctx context.Context, actor Actor) (SweepResult, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return SweepResult{}, domain.ErrUnauthorized
	}
	due, err := s.store.ListDueEscrows(ctx, s.nowFn(), s.cfg.SweepBatchSize)
	if err != nil {
		return SweepResult{}, err
	}

	var result SweepResult
	for _, rec := range due {
		result.Attempted++
		if _, err := s.release(ctx, actor, rec.EscrowID, false); err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "sweep release failed",
				"module", "application",
				"operation", "sweep_due_releases",
				"outcome", "failure",
				"escrow_id", rec.EscrowID,
				"booking_id", rec.BookingID,
				"error", err,
			)
			continue
		}
		result.Succeeded++
	}

	s.logger.InfoContext(ctx, "sweep completed",
		"module", "application",
		"operation", "sweep_due_releases",
		"outcome", "success",
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}
