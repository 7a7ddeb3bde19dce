package queue_test

import (
	"testing"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, restaurantID kernel.UUID, priority order.Priority, itemCount int) *order.Order {
	t.Helper()

	items := make([]order.Item, 0, itemCount)
	for range itemCount {
		item, err := order.NewItem("dish", 1, nil, "")
		require.NoError(t, err)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), restaurantID, order.DineIn, priority, items, 15)
	require.NoError(t, err)
	return o
}

func enqueue(t *testing.T, q *queue.Queue, o *order.Order) queue.Item {
	t.Helper()
	item, err := queue.NewItem(o)
	require.NoError(t, err)
	q.Enqueue(item)
	return item
}

func TestQueue_Enqueue_Ordering(t *testing.T) {
	t.Run("inserting N,U1,L,H,U2 yields U1,U2,H,N,L", func(t *testing.T) {
		restaurantID := kernel.NewUUID()
		q := queue.NewQueue()

		n := newTestOrder(t, restaurantID, order.Normal, 1)
		u1 := newTestOrder(t, restaurantID, order.Urgent, 1)
		l := newTestOrder(t, restaurantID, order.Low, 1)
		h := newTestOrder(t, restaurantID, order.High, 1)
		u2 := newTestOrder(t, restaurantID, order.Urgent, 1)

		for _, o := range []*order.Order{n, u1, l, h, u2} {
			enqueue(t, q, o)
		}

		items := q.Items()
		require.Len(t, items, 5)

		expected := []kernel.UUID{u1.ID(), u2.ID(), h.ID(), n.ID(), l.ID()}
		for i, want := range expected {
			assert.True(t, items[i].OrderID().IsEqual(want),
				"position %d: expected order %s, got %s", i, want, items[i].OrderID())
		}
	})

	t.Run("equal priorities preserve insertion order", func(t *testing.T) {
		restaurantID := kernel.NewUUID()
		q := queue.NewQueue()

		first := newTestOrder(t, restaurantID, order.High, 1)
		second := newTestOrder(t, restaurantID, order.High, 1)
		third := newTestOrder(t, restaurantID, order.High, 1)

		for _, o := range []*order.Order{first, second, third} {
			enqueue(t, q, o)
		}

		items := q.Items()
		assert.True(t, items[0].OrderID().IsEqual(first.ID()))
		assert.True(t, items[1].OrderID().IsEqual(second.ID()))
		assert.True(t, items[2].OrderID().IsEqual(third.ID()))
	})
}

func TestQueue_Remove(t *testing.T) {
	t.Run("should remove queued item by order id", func(t *testing.T) {
		q := queue.NewQueue()
		o := newTestOrder(t, kernel.NewUUID(), order.Normal, 1)
		enqueue(t, q, o)

		assert.True(t, q.Remove(o.ID()))
		assert.Equal(t, 0, q.Len())
	})

	t.Run("removing an absent order id is a no-op", func(t *testing.T) {
		q := queue.NewQueue()
		enqueue(t, q, newTestOrder(t, kernel.NewUUID(), order.Normal, 1))

		assert.False(t, q.Remove(kernel.NewUUID()))
		assert.Equal(t, 1, q.Len())
	})
}

func TestQueue_ItemsForRestaurant(t *testing.T) {
	t.Run("should filter by restaurant preserving order", func(t *testing.T) {
		restaurantA := kernel.NewUUID()
		restaurantB := kernel.NewUUID()
		q := queue.NewQueue()

		a1 := newTestOrder(t, restaurantA, order.Urgent, 1)
		b1 := newTestOrder(t, restaurantB, order.Urgent, 1)
		a2 := newTestOrder(t, restaurantA, order.Low, 1)

		for _, o := range []*order.Order{a1, b1, a2} {
			enqueue(t, q, o)
		}

		itemsA := q.ItemsForRestaurant(restaurantA)
		require.Len(t, itemsA, 2)
		assert.True(t, itemsA[0].OrderID().IsEqual(a1.ID()))
		assert.True(t, itemsA[1].OrderID().IsEqual(a2.ID()))

		itemsB := q.ItemsForRestaurant(restaurantB)
		require.Len(t, itemsB, 1)
	})
}

func TestItem_StaffRequired(t *testing.T) {
	t.Run("one staff unit per three items, rounded up", func(t *testing.T) {
		testCases := []struct {
			itemCount int
			expected  int
		}{
			{1, 1},
			{3, 1},
			{4, 2},
			{6, 2},
			{7, 3},
		}

		for _, tc := range testCases {
			o := newTestOrder(t, kernel.NewUUID(), order.Normal, tc.itemCount)
			item, err := queue.NewItem(o)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, item.StaffRequired(), "item count %d", tc.itemCount)
		}
	})
}

func TestQueue_WaitMinutes(t *testing.T) {
	t.Run("wait time is floored to whole minutes", func(t *testing.T) {
		q := queue.NewQueue()
		o := newTestOrder(t, kernel.NewUUID(), order.Normal, 1)
		item := enqueue(t, q, o)

		now := item.QueuedAt().Add(3*time.Minute + 59*time.Second)
		assert.Equal(t, 3, q.WaitMinutes(o.ID(), now))
	})

	t.Run("unknown order reports zero wait", func(t *testing.T) {
		q := queue.NewQueue()
		assert.Equal(t, 0, q.WaitMinutes(kernel.NewUUID(), time.Now()))
	})
}
