package queries

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/queue"
)

// GetOrderQueueQueryHandler reads the in-memory priority queue. Entries
// come back in processing order with their current wait time.
type GetOrderQueueQueryHandler struct {
	queue *queue.Queue
}

// NewGetOrderQueueQueryHandler creates a handler for order queue queries.
func NewGetOrderQueueQueryHandler(orderQueue *queue.Queue) GetOrderQueueQueryHandler {
	return GetOrderQueueQueryHandler{queue: orderQueue}
}

// Handle executes the query, optionally scoped to one restaurant.
func (h GetOrderQueueQueryHandler) Handle(
	_ context.Context,
	query GetOrderQueueQuery,
) ([]GetOrderQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var items []queue.Item
	if restaurantID := query.RestaurantID(); restaurantID != nil {
		items = h.queue.ItemsForRestaurant(*restaurantID)
	} else {
		items = h.queue.Items()
	}

	now := time.Now()
	entries := make([]GetOrderQueueQueryResponse, 0, len(items))
	for _, item := range items {
		entries = append(entries, GetOrderQueueQueryResponse{
			OrderID:          item.OrderID(),
			RestaurantID:     item.RestaurantID(),
			Priority:         item.Priority().String(),
			EstimatedMinutes: item.EstimatedMinutes(),
			StaffRequired:    item.StaffRequired(),
			WaitMinutes:      item.WaitMinutes(now),
		})
	}

	return entries, nil
}
