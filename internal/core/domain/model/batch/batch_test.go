package batch_test

import (
	"testing"

	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, restaurantID kernel.UUID, orderType order.Type,
	priority order.Priority, prepMinutes int,
) *order.Order {
	t.Helper()
	item, err := order.NewItem("dish", 1, nil, "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), restaurantID, orderType, priority,
		[]order.Item{item}, prepMinutes)
	require.NoError(t, err)
	return o
}

func TestCompatible(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("same type within one priority tier is compatible", func(t *testing.T) {
		a := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b := newTestOrder(t, restaurantID, order.DineIn, order.High, 10)

		assert.True(t, batch.Compatible(a, b))
		assert.True(t, batch.Compatible(b, a))
	})

	t.Run("different types are incompatible", func(t *testing.T) {
		a := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b := newTestOrder(t, restaurantID, order.Takeout, order.Normal, 10)

		assert.False(t, batch.Compatible(a, b))
	})

	t.Run("priority gap above one is incompatible", func(t *testing.T) {
		a := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b := newTestOrder(t, restaurantID, order.DineIn, order.Urgent, 10)

		assert.False(t, batch.Compatible(a, b))
	})
}

func TestComputeEstimatedMinutes(t *testing.T) {
	restaurantID := kernel.NewUUID()

	makeOrders := func(n, prepMinutes int) []*order.Order {
		orders := make([]*order.Order, 0, n)
		for range n {
			orders = append(orders, newTestOrder(t, restaurantID, order.DineIn, order.Normal, prepMinutes))
		}
		return orders
	}

	t.Run("singleton batch keeps nominal time", func(t *testing.T) {
		assert.Equal(t, 20, batch.ComputeEstimatedMinutes(makeOrders(1, 20)))
	})

	t.Run("two members gain ten percent", func(t *testing.T) {
		// ceil(40 * 0.9) = 36
		assert.Equal(t, 36, batch.ComputeEstimatedMinutes(makeOrders(2, 20)))
	})

	t.Run("efficiency factor floors at 0.8 from three members on", func(t *testing.T) {
		// ceil(3*10*0.8) = 24
		assert.Equal(t, 24, batch.ComputeEstimatedMinutes(makeOrders(3, 10)))
		// ceil(5*10*0.8) = 40, not 10*5*0.6
		assert.Equal(t, 40, batch.ComputeEstimatedMinutes(makeOrders(5, 10)))
	})
}

func TestComputePriority(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("blends max and average weights", func(t *testing.T) {
		orders := []*order.Order{
			newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10), // weight 2
			newTestOrder(t, restaurantID, order.DineIn, order.High, 10),   // weight 3
		}

		// ceil(0.7*3 + 0.3*2.5) = ceil(2.85) = 3
		assert.Equal(t, 3, batch.ComputePriority(orders))
	})

	t.Run("uniform membership keeps its weight", func(t *testing.T) {
		orders := []*order.Order{
			newTestOrder(t, restaurantID, order.DineIn, order.Urgent, 10),
			newTestOrder(t, restaurantID, order.DineIn, order.Urgent, 10),
		}

		assert.Equal(t, 4, batch.ComputePriority(orders))
	})
}

func TestBatch_Append(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("compatible order joins and batch is rescored", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 20)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)
		assert.Equal(t, 20, b.EstimatedMinutes())

		joiner := newTestOrder(t, restaurantID, order.DineIn, order.High, 10)
		require.NoError(t, b.Append(joiner))

		assert.Equal(t, 2, b.Len())
		// ceil(30 * 0.9) = 27
		assert.Equal(t, 27, b.EstimatedMinutes())
		assert.Equal(t, 3, b.Priority())
	})

	t.Run("admission is checked against the anchor only", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)

		// high is within one tier of the anchor (normal)
		high := newTestOrder(t, restaurantID, order.DineIn, order.High, 10)
		require.NoError(t, b.Append(high))

		// urgent is within one tier of the high member but two tiers from
		// the anchor, so it is rejected: the anchor decides
		urgent := newTestOrder(t, restaurantID, order.DineIn, order.Urgent, 10)
		assert.False(t, b.CanAccept(urgent))
		require.Error(t, b.Append(urgent))
		assert.Equal(t, 2, b.Len())
	})

	t.Run("full batch rejects further members", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)

		for range batch.MaxOrders - 1 {
			require.NoError(t, b.Append(newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)))
		}

		assert.Equal(t, batch.MaxOrders, b.Len())
		require.Error(t, b.Append(newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)))
	})

	t.Run("order from another restaurant is rejected", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)

		stranger := newTestOrder(t, kernel.NewUUID(), order.DineIn, order.Normal, 10)
		require.Error(t, b.Append(stranger))
	})
}

func TestBatch_Lifecycle(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("queued to processing to completed", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)
		assert.Equal(t, batch.Queued, b.Status())

		require.NoError(t, b.StartProcessing(nil))
		assert.Equal(t, batch.Processing, b.Status())
		require.NotNil(t, b.StartTime())
		assert.Empty(t, b.AssignedStaff())

		require.NoError(t, b.Complete())
		assert.Equal(t, batch.Completed, b.Status())
		require.NotNil(t, b.EndTime())
	})

	t.Run("membership freezes once processing starts", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)
		require.NoError(t, b.StartProcessing(nil))

		joiner := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		assert.False(t, b.CanAccept(joiner))
		require.Error(t, b.Append(joiner))
		assert.False(t, b.RemoveOrder(anchor.ID()))
	})

	t.Run("cannot complete a queued batch", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 10)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)

		require.Error(t, b.Complete())
	})
}

func TestBatch_RemoveOrder(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("pruning a queued member rescores the batch", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 20)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)

		joiner := newTestOrder(t, restaurantID, order.DineIn, order.High, 10)
		require.NoError(t, b.Append(joiner))
		require.Equal(t, 27, b.EstimatedMinutes())

		assert.True(t, b.RemoveOrder(joiner.ID()))
		assert.Equal(t, 1, b.Len())
		assert.Equal(t, 20, b.EstimatedMinutes())
		assert.Equal(t, 2, b.Priority())
	})

	t.Run("unknown member is a no-op", func(t *testing.T) {
		anchor := newTestOrder(t, restaurantID, order.DineIn, order.Normal, 20)
		b, err := batch.NewBatch(kernel.NewUUID(), anchor)
		require.NoError(t, err)

		assert.False(t, b.RemoveOrder(kernel.NewUUID()))
	})
}
