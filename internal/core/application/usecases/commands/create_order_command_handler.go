package commands

import (
	"context"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/queue"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Persists the new order in "pending" status, enqueues it in the priority
// queue, and joins it into a compatible processing batch.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, queue, scheduler, publisher, cache)
//	cmd, _ := NewCreateOrderCommand(orderID, restaurantID, order.DineIn, order.Normal, items, 20)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	queue      *queue.Queue
	scheduler  *services.BatchScheduler

	// publisher delivery is best-effort; statusCache misses are acceptable.
	publisher   ports.EventPublisher
	statusCache ports.QueueStatusCache
}

// NewCreateOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence, the shared
// priority queue and batch scheduler, and the eventing/caching adapters.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	orderQueue *queue.Queue,
	scheduler *services.BatchScheduler,
	publisher ports.EventPublisher,
	statusCache ports.QueueStatusCache,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		queue:       orderQueue,
		scheduler:   scheduler,
		publisher:   publisher,
		statusCache: statusCache,
	}
}

// Handle processes the order placement command.
// Creates the order in "pending" status, persists it, then places it in the
// priority queue and the restaurant's batch queue. The persisted order is
// the source of truth: queue and batch placement happen only after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.RestaurantID(),
		cmd.OrderType(),
		cmd.Priority(),
		cmd.Items(),
		cmd.EstimatedPrepMinutes(),
	)
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	queueItem, err := queue.NewItem(aggregate)
	if err != nil {
		return nil, err
	}
	h.queue.Enqueue(queueItem)

	if _, err = h.scheduler.AddOrder(aggregate); err != nil {
		return nil, err
	}

	_ = h.publisher.PublishOrderCreated(ctx, aggregate)
	_ = h.publisher.PublishOrderQueued(ctx, aggregate)
	_ = h.statusCache.Invalidate(ctx, aggregate.RestaurantID())

	return aggregate, nil
}
