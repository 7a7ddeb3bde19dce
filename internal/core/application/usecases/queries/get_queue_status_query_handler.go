package queries

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/metrics"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/queue"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"

	"gorm.io/gorm"
)

// queueStatusTTL bounds how stale a served snapshot can be. Status is
// polled aggressively by kitchen displays, so snapshots are cached briefly.
const queueStatusTTL = 10 * time.Second

// GetQueueStatusQueryHandler serves queue status snapshots with a
// read-through cache: a cached snapshot is returned as-is, a miss computes
// a fresh one from the scheduler and the database and stores it.
type GetQueueStatusQueryHandler struct {
	db          *gorm.DB
	queue       *queue.Queue
	scheduler   *services.BatchScheduler
	statusCache ports.QueueStatusCache
}

// NewGetQueueStatusQueryHandler creates a handler for queue status queries.
func NewGetQueueStatusQueryHandler(
	db *gorm.DB,
	orderQueue *queue.Queue,
	scheduler *services.BatchScheduler,
	statusCache ports.QueueStatusCache,
) GetQueueStatusQueryHandler {
	return GetQueueStatusQueryHandler{
		db:          db,
		queue:       orderQueue,
		scheduler:   scheduler,
		statusCache: statusCache,
	}
}

// Handle returns the restaurant's queue status snapshot.
//
// Cache errors are treated as misses: the handler still answers from live
// state when the cache is unavailable.
func (h GetQueueStatusQueryHandler) Handle(
	ctx context.Context,
	query GetQueueStatusQuery,
) (ports.QueueStatusSnapshot, error) {
	if err := query.Validate(); err != nil {
		return ports.QueueStatusSnapshot{}, err
	}

	if cached, err := h.statusCache.Get(ctx, query.RestaurantID()); err == nil && cached != nil {
		return *cached, nil
	}

	snapshot, err := h.buildSnapshot(ctx, query)
	if err != nil {
		return ports.QueueStatusSnapshot{}, err
	}

	_ = h.statusCache.Set(ctx, snapshot, queueStatusTTL)

	return snapshot, nil
}

func (h GetQueueStatusQueryHandler) buildSnapshot(
	ctx context.Context,
	query GetQueueStatusQuery,
) (ports.QueueStatusSnapshot, error) {
	queuedBatches := h.scheduler.QueuedBatches(query.RestaurantID())

	estimatedWaitMinutes := 0
	for _, b := range queuedBatches {
		estimatedWaitMinutes += b.EstimatedMinutes()
	}

	processingBatches := 0
	for _, b := range h.scheduler.InFlightBatches() {
		if b.RestaurantID().IsEqual(query.RestaurantID()) {
			processingBatches++
		}
	}

	var activeOrders int
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE restaurant_id = ?
		  AND status IN (?, ?)
	`, query.RestaurantID().Bytes(), order.Confirmed, order.Preparing).Scan(&activeOrders).Error
	if err != nil {
		return ports.QueueStatusSnapshot{}, err
	}

	return ports.QueueStatusSnapshot{
		RestaurantID:         query.RestaurantID(),
		QueuedOrders:         len(h.queue.ItemsForRestaurant(query.RestaurantID())),
		QueuedBatches:        len(queuedBatches),
		ProcessingBatches:    processingBatches,
		EstimatedWaitMinutes: estimatedWaitMinutes,
		KitchenLoadPercent:   metrics.KitchenLoadPercent(activeOrders),
		CapturedAt:           time.Now(),
	}, nil
}
