package jobs

import (
	"context"
	"log/slog"

	"nexaci/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// UnassignedSweepJob reports entities that are still waiting for a
// fulfillment agent. Runs every minute so dispatch sees a fresh backlog.
type UnassignedSweepJob struct {
	uowFactory commands.UoWFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewUnassignedSweepJob creates the sweep over both workflow backlogs.
func NewUnassignedSweepJob(uowFactory commands.UoWFactory, logger *slog.Logger) *UnassignedSweepJob {
	return &UnassignedSweepJob{
		uowFactory: uowFactory,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "unassigned_sweep_job"),
	}
}

// Start begins the unassigned sweep to run every minute.
func (j *UnassignedSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unassigned sweep job started (running every minute)")
	return nil
}

// Stop stops the unassigned sweep job.
func (j *UnassignedSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Unassigned sweep job stopped")
}

func (j *UnassignedSweepJob) sweep(ctx context.Context) {
	uow := j.uowFactory.Create()

	shipments, err := uow.ShipmentRepository().GetAllUnassigned(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Unassigned shipment sweep failed", "error", err)
		return
	}

	mandates, err := uow.MandateRepository().GetAllUnassigned(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Unassigned mandate sweep failed", "error", err)
		return
	}

	if len(shipments) == 0 && len(mandates) == 0 {
		return
	}

	references := make([]string, 0, len(shipments)+len(mandates))
	for _, s := range shipments {
		references = append(references, s.Reference().String())
	}
	for _, m := range mandates {
		references = append(references, m.Reference().String())
	}

	j.logger.WarnContext(ctx, "Entities awaiting agent assignment",
		"shipments", len(shipments),
		"mandates", len(mandates),
		"references", references,
	)
}
