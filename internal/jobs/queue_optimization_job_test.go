package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopStatusCache struct{}

func (noopStatusCache) Get(context.Context, kernel.UUID) (*ports.QueueStatusSnapshot, error) {
	return nil, nil
}

func (noopStatusCache) Set(context.Context, ports.QueueStatusSnapshot, time.Duration) error {
	return nil
}

func (noopStatusCache) Invalidate(context.Context, kernel.UUID) error {
	return nil
}

func newJobOrder(t *testing.T, restaurantID kernel.UUID, orderType order.Type,
	priority order.Priority,
) *order.Order {
	t.Helper()
	item, err := order.NewItem("dish", 1, nil, "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), restaurantID, orderType, priority,
		[]order.Item{item}, 10)
	require.NoError(t, err)
	return o
}

func TestQueueOptimizationJob_Run(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduler := services.NewBatchScheduler(nil)
	handler := commands.NewOptimizeQueueCommandHandler(scheduler, services.NewQueueOptimizer(), noopStatusCache{})
	job := NewQueueOptimizationJob(handler, scheduler, logger)

	restaurantA := kernel.NewUUID()
	restaurantB := kernel.NewUUID()

	// Mixed-priority dine-in orders land in one incremental batch per
	// restaurant; a sweep splits them into homogeneous batches.
	for _, restaurantID := range []kernel.UUID{restaurantA, restaurantB} {
		_, err := scheduler.AddOrder(newJobOrder(t, restaurantID, order.DineIn, order.Normal))
		require.NoError(t, err)
		_, err = scheduler.AddOrder(newJobOrder(t, restaurantID, order.DineIn, order.High))
		require.NoError(t, err)
	}

	job.run(context.Background())

	for _, restaurantID := range []kernel.UUID{restaurantA, restaurantB} {
		queued := scheduler.QueuedBatches(restaurantID)
		require.Len(t, queued, 2)
		assert.Equal(t, 3, queued[0].Priority())
		assert.Equal(t, 2, queued[1].Priority())
	}

	// A sweep never starts batches: dispatch stays operator-triggered.
	assert.Empty(t, scheduler.InFlightBatches())
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduler := services.NewBatchScheduler(nil)
	handler := commands.NewOptimizeQueueCommandHandler(scheduler, services.NewQueueOptimizer(), noopStatusCache{})

	manager := NewJobManager(handler, scheduler, logger)
	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
