package queue

import (
	"sync"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
)

// staffPerItems is the number of line items one staff unit is assumed to
// handle in parallel when deriving advisory resource requirements.
const staffPerItems = 3

// Item is an entry in the order priority queue. It references an order by
// identifier rather than owning it; the order aggregate remains owned by
// order management.
//
// Item is immutable once created. At most one live item exists per
// non-terminal order; the item is removed when its order reaches a
// terminal state.
type Item struct {
	orderID          kernel.UUID
	restaurantID     kernel.UUID
	priority         order.Priority
	estimatedMinutes int

	// dependencies is reserved for future order-to-order sequencing
	// constraints and is always empty today.
	dependencies []kernel.UUID

	// staffRequired is advisory metadata derived from the item count,
	// not an enforced capacity.
	staffRequired int

	queuedAt time.Time
}

// NewItem creates a queue entry for the given order, deriving the advisory
// staff requirement from the order's line item count: one staff unit per
// three items, rounded up, for the duration of the estimated prep time.
func NewItem(o *order.Order) (Item, error) {
	if err := o.Validate(); err != nil {
		return Item{}, err
	}

	itemCount := len(o.Items())
	staff := (itemCount + staffPerItems - 1) / staffPerItems

	return Item{
		orderID:          o.ID(),
		restaurantID:     o.RestaurantID(),
		priority:         o.Priority(),
		estimatedMinutes: o.EstimatedPrepMinutes(),
		staffRequired:    staff,
		queuedAt:         time.Now(),
	}, nil
}

// OrderID returns the identifier of the referenced order.
func (i Item) OrderID() kernel.UUID {
	return i.orderID
}

// RestaurantID returns the restaurant the referenced order belongs to.
func (i Item) RestaurantID() kernel.UUID {
	return i.restaurantID
}

// Priority returns the priority tier the item was queued with.
func (i Item) Priority() order.Priority {
	return i.priority
}

// EstimatedMinutes returns the estimated prep time the item was queued with.
func (i Item) EstimatedMinutes() int {
	return i.estimatedMinutes
}

// StaffRequired returns the advisory staff unit requirement.
func (i Item) StaffRequired() int {
	return i.staffRequired
}

// QueuedAt returns the enqueue timestamp.
func (i Item) QueuedAt() time.Time {
	return i.queuedAt
}

// WaitMinutes returns how long the item has been queued as of now,
// in whole minutes, floored.
func (i Item) WaitMinutes(now time.Time) int {
	return int(now.Sub(i.queuedAt).Minutes())
}

// Queue maintains a single insertion-ordered-within-priority sequence of
// queue items across all restaurants, filterable by restaurant.
//
// Ordering invariant: priorities are non-increasing from head to tail, and
// items of equal priority preserve their relative insertion order (stable
// FIFO within a tier). A newly enqueued item is placed immediately before
// the first existing item of strictly lower priority weight, or appended
// at the tail when no such item exists.
//
// Queue is safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	items []Item
}

// NewQueue creates an empty order priority queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue inserts the item according to the priority ordering invariant:
// scanning from the head, the item is placed before the first entry whose
// priority weight is strictly lower than its own. An urgent item therefore
// jumps ahead of queued high/normal/low items but never ahead of an urgent
// item queued earlier.
func (q *Queue) Enqueue(item Item) {
	q.mu.Lock()
	defer q.mu.Unlock()

	insertAt := len(q.items)
	for i := range q.items {
		if item.priority.Weight() > q.items[i].priority.Weight() {
			insertAt = i
			break
		}
	}

	q.items = append(q.items, Item{})
	copy(q.items[insertAt+1:], q.items[insertAt:])
	q.items[insertAt] = item
}

// Remove deletes the item referencing the given order, if present.
// Returns true when an item was removed. A missing order id is a no-op,
// not an error: removal happens on every terminal transition and the
// order may have never been queued.
func (q *Queue) Remove(orderID kernel.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].orderID.IsEqual(orderID) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a snapshot of the whole queue in priority order.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]Item(nil), q.items...)
}

// ItemsForRestaurant returns a snapshot of the queue filtered to one
// restaurant, preserving the global ordering.
func (q *Queue) ItemsForRestaurant(restaurantID kernel.UUID) []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	filtered := make([]Item, 0)
	for _, item := range q.items {
		if item.restaurantID.IsEqual(restaurantID) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// WaitMinutes returns how long the given order has been queued, in whole
// minutes, floored. Returns zero when the order is not queued.
func (q *Queue) WaitMinutes(orderID kernel.UUID, now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].orderID.IsEqual(orderID) {
			return q.items[i].WaitMinutes(now)
		}
	}
	return 0
}

// Len returns the number of queued items across all restaurants.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
