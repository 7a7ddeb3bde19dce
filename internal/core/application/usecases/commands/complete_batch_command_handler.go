package commands

import (
	"context"

	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

// CompleteBatchCommandHandler finishes an in-flight batch: member orders
// are settled with the batch's measured duration and become completed, and
// a metrics record is captured for each of them.
//
// Completing a batch that is not in flight (unknown, never started, or
// already completed) yields an object-not-found error from the scheduler.
type CompleteBatchCommandHandler struct {
	uowFactory UoWFactory
	scheduler  *services.BatchScheduler

	publisher   ports.EventPublisher
	statusCache ports.QueueStatusCache
}

// NewCompleteBatchCommandHandler creates a handler for batch completion.
func NewCompleteBatchCommandHandler(
	uowFactory UoWFactory,
	scheduler *services.BatchScheduler,
	publisher ports.EventPublisher,
	statusCache ports.QueueStatusCache,
) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory:  uowFactory,
		scheduler:   scheduler,
		publisher:   publisher,
		statusCache: statusCache,
	}
}

// Handle processes the command and returns the completed batch.
func (h *CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) (*batch.Batch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	completed, err := h.scheduler.Complete(cmd.BatchID())
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
	metricsRepo := uow.MetricsRepository()

	records := make([]*metrics.Metric, 0, completed.Len())
	for _, member := range completed.Orders() {
		if err = orderRepo.Update(ctx, member); err != nil {
			return nil, err
		}

		activeOrders, countErr := orderRepo.CountActiveByRestaurant(ctx, member.RestaurantID())
		if countErr != nil {
			return nil, countErr
		}

		record, recordErr := metrics.NewMetric(kernel.NewUUID(), member, 0, activeOrders, defaultStaffCount)
		if recordErr != nil {
			return nil, recordErr
		}

		if err = metricsRepo.Append(ctx, record); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, member := range completed.Orders() {
		_ = h.publisher.PublishOrderStatusUpdated(ctx, member, order.Preparing)
	}
	for _, record := range records {
		_ = h.publisher.PublishMetricsRecorded(ctx, record)
	}
	_ = h.statusCache.Invalidate(ctx, completed.RestaurantID())

	return completed, nil
}
