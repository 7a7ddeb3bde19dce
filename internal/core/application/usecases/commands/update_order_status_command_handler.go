package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/queue"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

// defaultStaffCount is recorded in metrics until rosters become part of
// restaurant data.
const defaultStaffCount = 5

// UpdateOrderStatusCommandHandler handles order status transitions.
// Applies the transition through the order aggregate, captures a metrics
// record for the change, and keeps the queue and batch state consistent:
// an order reaching a terminal status leaves the priority queue and is
// pruned from its queued batch.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	queue      *queue.Queue
	scheduler  *services.BatchScheduler

	publisher   ports.EventPublisher
	statusCache ports.QueueStatusCache
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	orderQueue *queue.Queue,
	scheduler *services.BatchScheduler,
	publisher ports.EventPublisher,
	statusCache ports.QueueStatusCache,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		queue:       orderQueue,
		scheduler:   scheduler,
		publisher:   publisher,
		statusCache: statusCache,
	}
}

// Handle processes the status update command.
//
// The order is loaded, transitioned, and persisted together with its
// metrics record in one transaction. Illegal transitions surface as
// validation errors from the aggregate and leave the order unchanged.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	if err = aggregate.UpdateStatus(cmd.Status()); err != nil {
		return nil, err
	}

	// wait time must be read before the queue entry is dropped
	queueWaitMinutes := h.queue.WaitMinutes(aggregate.ID(), time.Now())

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	activeOrders, err := orderRepo.CountActiveByRestaurant(ctx, aggregate.RestaurantID())
	if err != nil {
		return nil, err
	}

	record, err := metrics.NewMetric(kernel.NewUUID(), aggregate, queueWaitMinutes, activeOrders, defaultStaffCount)
	if err != nil {
		return nil, err
	}

	if err = uow.MetricsRepository().Append(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	removedFromQueue := false
	if aggregate.Status().IsTerminal() {
		removedFromQueue = h.queue.Remove(aggregate.ID())
		h.scheduler.RemoveOrder(aggregate.RestaurantID(), aggregate.ID())
	}

	_ = h.publisher.PublishOrderStatusUpdated(ctx, aggregate, previous)
	if removedFromQueue {
		_ = h.publisher.PublishOrderRemovedFromQueue(ctx, aggregate.ID())
	}
	_ = h.publisher.PublishMetricsRecorded(ctx, record)
	_ = h.statusCache.Invalidate(ctx, aggregate.RestaurantID())

	return aggregate, nil
}
