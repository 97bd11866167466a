// Package scheduler runs the periodic release sweep in-process.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/rigpark/escrow-service/internal/application"
)

// Sweeper is the slice of the service the worker drives.
type Sweeper interface {
	SweepDueReleases(ctx context.Context, actor application.Actor) (application.SweepResult, error)
}

type Worker struct {
	logger   *slog.Logger
	service  Sweeper
	interval time.Duration
}

func NewWorker(logger *slog.Logger, service Sweeper, interval time.Duration) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Worker{logger: logger, service: service, interval: interval}
}

// Run sweeps once immediately, then on every tick until cancellation.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.sweep(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	result, err := w.service.SweepDueReleases(ctx, application.Actor{
		SubjectID: "release-scheduler",
		Role:      "system",
	})
	if err != nil {
		w.logger.ErrorContext(ctx, "release sweep failed",
			"module", "scheduler",
			"operation", "sweep",
			"outcome", "failure",
			"error", err,
		)
		return
	}
	w.logger.InfoContext(ctx, "release sweep finished",
		"module", "scheduler",
		"operation", "sweep",
		"outcome", "success",
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
}
