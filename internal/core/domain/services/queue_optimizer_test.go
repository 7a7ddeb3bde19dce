package services_test

import (
	"testing"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOptimizer_Rebatch(t *testing.T) {
	restaurantID := kernel.NewUUID()
	optimizer := services.NewQueueOptimizer()

	t.Run("splits a large homogeneous group into capped chunks", func(t *testing.T) {
		orders := make([]*order.Order, 0, 17)
		for range 17 {
			orders = append(orders, newSchedulerOrder(t, restaurantID, order.DineIn, order.Normal, 10))
		}

		batches, err := optimizer.Rebatch(orders)
		require.NoError(t, err)

		require.Len(t, batches, 3)
		assert.Equal(t, 8, batches[0].Len())
		assert.Equal(t, 8, batches[1].Len())
		assert.Equal(t, 1, batches[2].Len())
	})

	t.Run("never mixes type or priority within a batch", func(t *testing.T) {
		orders := []*order.Order{
			newSchedulerOrder(t, restaurantID, order.DineIn, order.Normal, 10),
			newSchedulerOrder(t, restaurantID, order.Takeout, order.Normal, 10),
			newSchedulerOrder(t, restaurantID, order.DineIn, order.High, 10),
			newSchedulerOrder(t, restaurantID, order.DineIn, order.Normal, 10),
		}

		batches, err := optimizer.Rebatch(orders)
		require.NoError(t, err)

		require.Len(t, batches, 3)
		for _, b := range batches {
			anchor := b.Anchor()
			for _, o := range b.Orders() {
				assert.Equal(t, anchor.OrderType(), o.OrderType())
				assert.Equal(t, anchor.Priority(), o.Priority())
			}
		}
	})
}

func TestQueueOptimizer_Optimize(t *testing.T) {
	restaurantID := kernel.NewUUID()
	optimizer := services.NewQueueOptimizer()

	t.Run("rebuilds the scheduler's queue in priority order", func(t *testing.T) {
		scheduler := services.NewBatchScheduler(nil)

		// dine-in normal and high land in one incremental batch
		_, err := scheduler.AddOrder(newSchedulerOrder(t, restaurantID, order.DineIn, order.Normal, 20))
		require.NoError(t, err)
		_, err = scheduler.AddOrder(newSchedulerOrder(t, restaurantID, order.DineIn, order.High, 10))
		require.NoError(t, err)
		_, err = scheduler.AddOrder(newSchedulerOrder(t, restaurantID, order.Takeout, order.Urgent, 5))
		require.NoError(t, err)

		rebuilt, err := optimizer.Optimize(scheduler, restaurantID)
		require.NoError(t, err)

		require.Len(t, rebuilt, 3, "mixed incremental batch is split apart")
		assert.Equal(t, 4, rebuilt[0].Priority())
		assert.Equal(t, order.Takeout, rebuilt[0].Anchor().OrderType())
		assert.Equal(t, 3, rebuilt[1].Priority())
		assert.Equal(t, 2, rebuilt[2].Priority())

		assert.Len(t, scheduler.QueuedBatches(restaurantID), 3)
	})

	t.Run("empty queue is a no-op", func(t *testing.T) {
		scheduler := services.NewBatchScheduler(nil)

		rebuilt, err := optimizer.Optimize(scheduler, restaurantID)
		require.NoError(t, err)
		assert.Empty(t, rebuilt)
	})
}
