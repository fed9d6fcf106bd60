package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nexaci/internal/core/application/usecases/commands"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/core/domain/model/shipment"

	"github.com/robfig/cron/v3"
)

// redeliveryCooldown is how long a failed delivery rests before the shipment
// goes back out for delivery.
const redeliveryCooldown = 30 * time.Minute

// RedeliveryJob re-queues shipments whose delivery attempt failed. Runs every
// five minutes and sends rested failures back out on behalf of their assigned
// agent, so the retry loop does not depend on anyone remembering the parcel.
type RedeliveryJob struct {
	uowFactory commands.UoWFactory
	handler    commands.TransitionEntityCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewRedeliveryJob creates the redelivery job over the failed-delivery backlog.
func NewRedeliveryJob(
	uowFactory commands.UoWFactory,
	handler commands.TransitionEntityCommandHandler,
	logger *slog.Logger,
) *RedeliveryJob {
	return &RedeliveryJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "redelivery_job"),
	}
}

// Start begins the redelivery job to run every five minutes.
func (j *RedeliveryJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Redelivery job started (running every five minutes)")
	return nil
}

// Stop stops the redelivery job.
func (j *RedeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Redelivery job stopped")
}

func (j *RedeliveryJob) sweep(ctx context.Context) {
	repo := j.uowFactory.Create().ShipmentRepository()

	failed, err := repo.GetAllInStatus(ctx, shipment.StatusDeliveryFailed)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed delivery sweep failed", "error", err)
		return
	}

	cutoff := time.Now().UTC().Add(-redeliveryCooldown)
	for _, s := range failed {
		agent := s.AssignedAgent()
		if agent == nil || s.UpdatedAt().After(cutoff) {
			continue
		}

		cmd, cmdErr := commands.NewTransitionEntityCommand(
			kernel.KindShipment,
			s.ID(),
			shipment.StatusOutForDelivery.String(),
			*agent,
			"automatic redelivery attempt",
			nil,
		)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Redelivery command rejected",
				"reference", s.Reference().String(), "error", cmdErr)
			continue
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// A human acting on the shipment at the same moment wins the race.
			if errors.Is(handleErr, lifecycle.ErrConcurrentModification) {
				continue
			}
			j.logger.ErrorContext(ctx, "Redelivery attempt failed",
				"reference", s.Reference().String(), "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Shipment sent back out for delivery",
			"reference", s.Reference().String())
	}
}
