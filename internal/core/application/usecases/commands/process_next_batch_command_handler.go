package commands

import (
	"context"

	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/queue"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

// ProcessNextBatchCommandHandler starts the restaurant's highest-priority
// queued batch and persists the member orders' move into preparation.
//
// An empty queue surfaces as services.ErrNoQueuedBatches; callers decide
// whether that is an error or simply nothing to do.
type ProcessNextBatchCommandHandler struct {
	uowFactory OrderUoWFactory
	queue      *queue.Queue
	scheduler  *services.BatchScheduler

	publisher   ports.EventPublisher
	statusCache ports.QueueStatusCache
}

// NewProcessNextBatchCommandHandler creates a handler for batch starts.
func NewProcessNextBatchCommandHandler(
	uowFactory OrderUoWFactory,
	orderQueue *queue.Queue,
	scheduler *services.BatchScheduler,
	publisher ports.EventPublisher,
	statusCache ports.QueueStatusCache,
) ProcessNextBatchCommandHandler {
	return ProcessNextBatchCommandHandler{
		uowFactory:  uowFactory,
		queue:       orderQueue,
		scheduler:   scheduler,
		publisher:   publisher,
		statusCache: statusCache,
	}
}

// Handle processes the command and returns the batch that started.
//
// Member orders move to "preparing" in memory first, then their new state
// is persisted in one transaction. The members also leave the priority
// queue: queued wait ends once the kitchen starts the batch.
func (h *ProcessNextBatchCommandHandler) Handle(ctx context.Context, cmd ProcessNextBatchCommand) (*batch.Batch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	started, err := h.scheduler.ProcessNext(cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	for _, member := range started.Orders() {
		if err = orderRepo.Update(ctx, member); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, member := range started.Orders() {
		if h.queue.Remove(member.ID()) {
			_ = h.publisher.PublishOrderRemovedFromQueue(ctx, member.ID())
		}
		_ = h.publisher.PublishOrderStatusUpdated(ctx, member, order.Pending)
	}
	_ = h.statusCache.Invalidate(ctx, cmd.RestaurantID())

	return started, nil
}
