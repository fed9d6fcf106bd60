package jobs

import (
	"fmt"
	"log/slog"

	"nexaci/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	unassignedSweepJob *UnassignedSweepJob
	redeliveryJob      *RedeliveryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the unit of work factory and the transition handler as dependencies
// to wire up the job execution.
func NewJobManager(
	uowFactory commands.UoWFactory,
	transitionHandler commands.TransitionEntityCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		unassignedSweepJob: NewUnassignedSweepJob(uowFactory, logger),
		redeliveryJob:      NewRedeliveryJob(uowFactory, transitionHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.unassignedSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start unassigned sweep job: %w", err)
	}

	if err := jm.redeliveryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.unassignedSweepJob.Stop()
		return fmt.Errorf("failed to start redelivery job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.redeliveryJob.Stop()
	jm.unassignedSweepJob.Stop()
}
