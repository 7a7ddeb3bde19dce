package commands

import (
	"context"

	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

// OptimizeQueueCommandHandler rebuilds a restaurant's queued batches.
// Purely an in-memory regrouping: no order state changes, so nothing is
// persisted. In-flight batches are untouched.
type OptimizeQueueCommandHandler struct {
	scheduler *services.BatchScheduler
	optimizer services.QueueOptimizer

	statusCache ports.QueueStatusCache
}

// NewOptimizeQueueCommandHandler creates a handler for queue optimization.
func NewOptimizeQueueCommandHandler(
	scheduler *services.BatchScheduler,
	optimizer services.QueueOptimizer,
	statusCache ports.QueueStatusCache,
) OptimizeQueueCommandHandler {
	return OptimizeQueueCommandHandler{
		scheduler:   scheduler,
		optimizer:   optimizer,
		statusCache: statusCache,
	}
}

// Handle processes the command and returns the rebuilt batches in their
// new processing order.
func (h *OptimizeQueueCommandHandler) Handle(ctx context.Context, cmd OptimizeQueueCommand) ([]*batch.Batch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	rebuilt, err := h.optimizer.Optimize(h.scheduler, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	_ = h.statusCache.Invalidate(ctx, cmd.RestaurantID())

	return rebuilt, nil
}
