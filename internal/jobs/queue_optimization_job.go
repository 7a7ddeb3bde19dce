package jobs

import (
	"context"
	"log/slog"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// QueueOptimizationJob periodically regroups each restaurant's queued orders
// into optimized batches. Runs every minute so incremental batches formed
// during intake get consolidated by type and priority.
type QueueOptimizationJob struct {
	handler   commands.OptimizeQueueCommandHandler
	scheduler *services.BatchScheduler
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewQueueOptimizationJob creates a new job for periodic queue optimization.
func NewQueueOptimizationJob(
	handler commands.OptimizeQueueCommandHandler,
	scheduler *services.BatchScheduler,
	logger *slog.Logger,
) *QueueOptimizationJob {
	return &QueueOptimizationJob{
		handler:   handler,
		scheduler: scheduler,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "queue_optimization_job"),
	}
}

// Start begins the queue optimization job to run every minute.
func (j *QueueOptimizationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue optimization job started (running every minute)")
	return nil
}

// run performs one optimization sweep over every known restaurant.
func (j *QueueOptimizationJob) run(ctx context.Context) {
	for _, restaurantID := range j.scheduler.RestaurantIDs() {
		cmd, cmdErr := commands.NewOptimizeQueueCommand(restaurantID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build optimize queue command",
				"restaurant_id", restaurantID.String(), "error", cmdErr)
			continue
		}

		if _, handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Queue optimization failed",
				"restaurant_id", restaurantID.String(), "error", handleErr)
		}
	}
}

// Stop stops the queue optimization job.
func (j *QueueOptimizationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Queue optimization job stopped")
}
