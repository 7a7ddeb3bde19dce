package services

import (
	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
)

// QueueOptimizer is a domain service that periodically rebuilds a
// restaurant's queued batches from scratch.
//
// Incremental batching admits orders against whichever batch happened to be
// open when they arrived, so over time a queue accumulates mixed batches
// and underfilled ones. The optimizer regroups all queued orders by order
// type and priority, producing homogeneous batches capped at a smaller
// size than incremental admission allows, and reinstalls them in priority
// order.
//
// In-flight batches are never touched: optimization only reshuffles work
// that has not started.
type QueueOptimizer struct{}

// NewQueueOptimizer creates a new QueueOptimizer instance.
func NewQueueOptimizer() QueueOptimizer {
	return QueueOptimizer{}
}

// Optimize rebuilds the restaurant's queued batches on the given scheduler.
//
// The whole rebuild runs as a single scheduler operation, so intake and
// dispatch for the restaurant wait until the new batch set is installed.
// Returns the rebuilt batches in their new processing order. A restaurant
// with an empty queue is a no-op and returns an empty slice.
func (q QueueOptimizer) Optimize(s *BatchScheduler, restaurantID kernel.UUID) ([]*batch.Batch, error) {
	return s.OptimizeQueued(restaurantID, q.Rebatch)
}

// Rebatch groups orders into homogeneous batches.
//
// Orders are bucketed by (type, priority) and each bucket is split into
// chunks of at most batch.MaxOptimizedOrders, preserving arrival order
// within the bucket.
func (q QueueOptimizer) Rebatch(orders []*order.Order) ([]*batch.Batch, error) {
	type groupKey struct {
		orderType order.Type
		priority  order.Priority
	}

	groups := make(map[groupKey][]*order.Order)
	keys := make([]groupKey, 0)

	for _, o := range orders {
		key := groupKey{orderType: o.OrderType(), priority: o.Priority()}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], o)
	}

	batches := make([]*batch.Batch, 0, len(keys))
	for _, key := range keys {
		group := groups[key]

		for len(group) > 0 {
			size := min(len(group), batch.MaxOptimizedOrders)

			b, err := batch.NewBatchOfOrders(kernel.NewUUID(), group[:size])
			if err != nil {
				return nil, err
			}

			batches = append(batches, b)
			group = group[size:]
		}
	}

	return batches, nil
}
