// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the status engine.
//
// # Available Jobs
//
// 1. StatusReconciliationJob - Re-derives group and order statuses for trees
// touched within a configurable lookback window, repairing any drift between
// stored and computed values.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, "@every 5m", time.Hour, logger)
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
// - Reconciliation processes each order tree in its own transaction, so one
// broken tree does not block the rest of the run
// - Per-tree failures are joined into a single error and logged once per run
// - A failed job start stops any already running jobs
package jobs
