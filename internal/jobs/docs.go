// Package jobs provides scheduled background tasks for the kitchen
// scheduling system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for batch processing.
//
// # Available Jobs
//
// 1. QueueOptimizationJob - Runs every minute to regroup queued orders into
// optimized batches by type and priority
//
// Batch dispatch is not a scheduled job: starting a batch commits kitchen
// staff, so it remains an operator-triggered HTTP action.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(optimizeQueueHandler, scheduler, logger)
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
// - Optimization job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
