package jobs

import (
	"fmt"
	"log/slog"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
//
// Batch dispatch deliberately has no job here: pulling a batch into
// processing commits kitchen staff, so it stays an operator-triggered
// HTTP action. Only the queue optimizer runs on a schedule.
type JobManager struct {
	queueOptimizationJob *QueueOptimizationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	optimizeQueueHandler commands.OptimizeQueueCommandHandler,
	scheduler *services.BatchScheduler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		queueOptimizationJob: NewQueueOptimizationJob(optimizeQueueHandler, scheduler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.queueOptimizationJob.Start(); err != nil {
		return fmt.Errorf("failed to start queue optimization job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.queueOptimizationJob.Stop()
}
