// Package rediscache provides the Redis implementation of the queue status
// cache port. Snapshots are stored as JSON values with a short TTL so that
// high-frequency status polling does not hit the scheduler on every request.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kitchen:queue-status:"

// QueueStatusCache implements ports.QueueStatusCache on top of Redis.
type QueueStatusCache struct {
	client *redis.Client
}

// NewQueueStatusCache creates a Redis-backed queue status cache.
func NewQueueStatusCache(client *redis.Client) *QueueStatusCache {
	return &QueueStatusCache{client: client}
}

var _ ports.QueueStatusCache = (*QueueStatusCache)(nil)

// snapshotDTO is the stored representation of a snapshot. The restaurant ID
// is serialized as a string because the domain UUID has no JSON encoding.
type snapshotDTO struct {
	RestaurantID         string    `json:"restaurant_id"`
	QueuedOrders         int       `json:"queued_orders"`
	QueuedBatches        int       `json:"queued_batches"`
	ProcessingBatches    int       `json:"processing_batches"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes"`
	KitchenLoadPercent   float64   `json:"kitchen_load_percent"`
	CapturedAt           time.Time `json:"captured_at"`
}

// Get retrieves the cached snapshot for a restaurant.
// Returns nil without error on a cache miss.
func (c *QueueStatusCache) Get(ctx context.Context, restaurantID kernel.UUID) (*ports.QueueStatusSnapshot, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, cacheKey(restaurantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var dto snapshotDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(dto.RestaurantID)
	if err != nil {
		return nil, err
	}

	return &ports.QueueStatusSnapshot{
		RestaurantID:         id,
		QueuedOrders:         dto.QueuedOrders,
		QueuedBatches:        dto.QueuedBatches,
		ProcessingBatches:    dto.ProcessingBatches,
		EstimatedWaitMinutes: dto.EstimatedWaitMinutes,
		KitchenLoadPercent:   dto.KitchenLoadPercent,
		CapturedAt:           dto.CapturedAt,
	}, nil
}

// Set stores a snapshot with the given time-to-live.
func (c *QueueStatusCache) Set(ctx context.Context, snapshot ports.QueueStatusSnapshot, ttl time.Duration) error {
	if err := snapshot.RestaurantID.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(snapshotDTO{
		RestaurantID:         snapshot.RestaurantID.String(),
		QueuedOrders:         snapshot.QueuedOrders,
		QueuedBatches:        snapshot.QueuedBatches,
		ProcessingBatches:    snapshot.ProcessingBatches,
		EstimatedWaitMinutes: snapshot.EstimatedWaitMinutes,
		KitchenLoadPercent:   snapshot.KitchenLoadPercent,
		CapturedAt:           snapshot.CapturedAt,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, cacheKey(snapshot.RestaurantID), payload, ttl).Err()
}

// Invalidate drops the restaurant's cached snapshot, if any.
func (c *QueueStatusCache) Invalidate(ctx context.Context, restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	return c.client.Del(ctx, cacheKey(restaurantID)).Err()
}

func cacheKey(restaurantID kernel.UUID) string {
	return keyPrefix + restaurantID.String()
}
