// Package jobs provides scheduled background tasks for the fulfillment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic housekeeping the fulfillment workflows need.
//
// # Available Jobs
//
// 1. UnassignedSweepJob - Periodically reports shipments and mandates that are
// still waiting for a fulfillment agent, so dispatch can act on them.
// 2. RedeliveryJob - Periodically re-queues shipments whose delivery attempt
// failed, sending them back out for delivery after a cool-down period.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, transitionHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The redelivery job ignores lost concurrent races; a human acting on the
// shipment at the same moment always wins.
// - The unassigned sweep only reads, so every error it hits is logged.
// - Failed job starts will stop any already running jobs.
package jobs
