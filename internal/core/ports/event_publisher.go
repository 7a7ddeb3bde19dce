package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"
	"kitchen/internal/core/domain/model/order"
)

// EventPublisher defines the messaging contract for order lifecycle events.
// Implementations deliver events to interested consumers (kitchen displays,
// notification services); delivery is best-effort and publishing failures
// must not fail the business operation that raised the event.
type EventPublisher interface {
	// PublishOrderCreated announces a newly placed order.
	PublishOrderCreated(ctx context.Context, aggregate *order.Order) error

	// PublishOrderStatusUpdated announces an order's status change,
	// carrying both the new and the previous status.
	PublishOrderStatusUpdated(ctx context.Context, aggregate *order.Order, previous order.Status) error

	// PublishOrderQueued announces that an order entered the processing queue.
	PublishOrderQueued(ctx context.Context, aggregate *order.Order) error

	// PublishOrderRemovedFromQueue announces that an order left the queue
	// before processing, typically on reaching a terminal status.
	PublishOrderRemovedFromQueue(ctx context.Context, orderID kernel.UUID) error

	// PublishMetricsRecorded announces that a metrics record was captured.
	PublishMetricsRecorded(ctx context.Context, record *metrics.Metric) error
}
