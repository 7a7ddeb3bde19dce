package ports

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
)

// QueueStatusSnapshot is a point-in-time summary of a restaurant's
// processing queue, served to clients polling the queue status endpoint.
type QueueStatusSnapshot struct {
	RestaurantID         kernel.UUID `json:"restaurantId"`
	QueuedOrders         int         `json:"queuedOrders"`
	QueuedBatches        int         `json:"queuedBatches"`
	ProcessingBatches    int         `json:"processingBatches"`
	EstimatedWaitMinutes int         `json:"estimatedWaitMinutes"`
	KitchenLoadPercent   float64     `json:"kitchenLoadPercent"`
	CapturedAt           time.Time   `json:"capturedAt"`
}

// QueueStatusCache defines a short-lived cache for queue status snapshots,
// shielding the scheduler from high-frequency status polling.
type QueueStatusCache interface {
	// Get retrieves the cached snapshot for a restaurant.
	// Returns nil without error on a cache miss.
	Get(ctx context.Context, restaurantID kernel.UUID) (*QueueStatusSnapshot, error)

	// Set stores a snapshot with the given time-to-live.
	Set(ctx context.Context, snapshot QueueStatusSnapshot, ttl time.Duration) error

	// Invalidate drops the restaurant's cached snapshot, if any.
	Invalidate(ctx context.Context, restaurantID kernel.UUID) error
}
