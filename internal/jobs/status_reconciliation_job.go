package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StatusReconciliationJob periodically re-derives group and order statuses
// for recently touched trees, repairing any drift between stored and
// computed values.
type StatusReconciliationJob struct {
	handler  commands.ReconcileStatusesCommandHandler
	cron     *cron.Cron
	schedule string
	window   time.Duration
	logger   *slog.Logger
}

// NewStatusReconciliationJob creates a reconciliation job with the given cron
// schedule and lookback window.
func NewStatusReconciliationJob(
	handler commands.ReconcileStatusesCommandHandler,
	schedule string,
	window time.Duration,
	logger *slog.Logger,
) *StatusReconciliationJob {
	return &StatusReconciliationJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		window:   window,
		logger:   logger.With("component", "status_reconciliation_job"),
	}
}

// Start schedules the reconciliation job.
func (j *StatusReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewReconcileStatusesCommand(j.window)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation window is misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Per-tree failures are joined into one error; the remaining
			// trees were still reconciled.
			j.logger.ErrorContext(ctx, "Status reconciliation run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status reconciliation job started",
		"schedule", j.schedule, "window", j.window)
	return nil
}

// Stop stops the reconciliation job.
func (j *StatusReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status reconciliation job stopped")
}
