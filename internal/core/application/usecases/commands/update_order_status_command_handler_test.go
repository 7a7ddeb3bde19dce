package commands_test

import (
	"testing"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/queue"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), restaurantID, order.DineIn, order.Normal, mustItems(t), 20)
	require.NoError(t, err)
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newPendingOrder(t, restaurantID)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Confirmed)

	orderRepo := new(MockOrderRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("MetricsRepository").Return(metricsRepo).Once()
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	orderRepo.On("CountActiveByRestaurant", mock.Anything, restaurantID).Return(3, nil).Once()
	metricsRepo.On("Append", mock.Anything, mock.AnythingOfType("*metrics.Metric")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &stubPublisher{}
	statusCache := &stubStatusCache{}

	h := commands.NewUpdateOrderStatusCommandHandler(factory, queue.NewQueue(),
		services.NewBatchScheduler(nil), publisher, statusCache)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Confirmed, updated.Status())
	assert.Equal(t, []kernel.UUID{aggregate.ID()}, publisher.statusUpdated)
	assert.Empty(t, publisher.removed, "non-terminal change keeps the order queued")
	assert.Equal(t, 1, publisher.metricRecorded)
	assert.Equal(t, []kernel.UUID{restaurantID}, statusCache.invalidated)

	orderRepo.AssertExpectations(t)
	metricsRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelPrunesQueueAndBatch(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newPendingOrder(t, restaurantID)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Cancelled)

	orderQueue := queue.NewQueue()
	queueItem, err := queue.NewItem(aggregate)
	require.NoError(t, err)
	orderQueue.Enqueue(queueItem)

	scheduler := services.NewBatchScheduler(nil)
	_, err = scheduler.AddOrder(aggregate)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("MetricsRepository").Return(metricsRepo).Once()
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	orderRepo.On("CountActiveByRestaurant", mock.Anything, restaurantID).Return(0, nil).Once()
	metricsRepo.On("Append", mock.Anything, mock.AnythingOfType("*metrics.Metric")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &stubPublisher{}

	h := commands.NewUpdateOrderStatusCommandHandler(factory, orderQueue, scheduler, publisher, &stubStatusCache{})
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Cancelled, updated.Status())
	require.NotNil(t, updated.CompletedAt())
	assert.Equal(t, 0, orderQueue.Len())
	assert.Empty(t, scheduler.QueuedBatches(restaurantID))
	assert.Equal(t, []kernel.UUID{aggregate.ID()}, publisher.removed)
}

func TestUpdateOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewUpdateOrderStatusCommand(orderID, order.Confirmed)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, orderID).
		Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, queue.NewQueue(),
		services.NewBatchScheduler(nil), &stubPublisher{}, &stubStatusCache{})
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newPendingOrder(t, restaurantID)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Completed)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &stubPublisher{}

	h := commands.NewUpdateOrderStatusCommandHandler(factory, queue.NewQueue(),
		services.NewBatchScheduler(nil), publisher, &stubStatusCache{})
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, order.Pending, aggregate.Status(), "illegal transition leaves the order unchanged")
	assert.Empty(t, publisher.statusUpdated)
	orderRepo.AssertExpectations(t)
}
