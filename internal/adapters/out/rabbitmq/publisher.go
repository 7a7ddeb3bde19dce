package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"
)

// Exchange is the topic exchange all order lifecycle events are published to.
const Exchange = "kitchen.events"

// Routing keys for order lifecycle events. Consumers bind queues with
// patterns like "order.*" or "metrics.recorded".
const (
	orderCreatedKey    = "order.created"
	orderStatusKey     = "order.status_updated"
	orderQueuedKey     = "order.queued"
	orderRemovedKey    = "order.removed_from_queue"
	metricsRecordedKey = "metrics.recorded"
	eventContentType   = "application/json"
	persistentDelivery = true
)

// wirePublisher abstracts the AMQP client so the publisher can be exercised
// without a live broker.
type wirePublisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, contentType string, persistent bool) error
}

// EventPublisher implements ports.EventPublisher on top of RabbitMQ.
type EventPublisher struct {
	client wirePublisher
}

// NewEventPublisher creates a publisher and declares the topic exchange.
func NewEventPublisher(client *Client) (*EventPublisher, error) {
	if err := client.Channel().ExchangeDeclare(
		Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, err
	}
	return &EventPublisher{client: client}, nil
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// orderEvent is the wire representation of an order lifecycle event.
type orderEvent struct {
	EventType            string    `json:"event_type"`
	OrderID              string    `json:"order_id"`
	OrderNumber          string    `json:"order_number,omitempty"`
	RestaurantID         string    `json:"restaurant_id,omitempty"`
	OrderType            string    `json:"order_type,omitempty"`
	Priority             string    `json:"priority,omitempty"`
	Status               string    `json:"status,omitempty"`
	PreviousStatus       string    `json:"previous_status,omitempty"`
	EstimatedPrepMinutes int       `json:"estimated_prep_minutes,omitempty"`
	OccurredAt           time.Time `json:"occurred_at"`
}

// metricsEvent is the wire representation of a recorded metrics event.
type metricsEvent struct {
	EventType              string    `json:"event_type"`
	MetricID               string    `json:"metric_id"`
	OrderID                string    `json:"order_id"`
	RestaurantID           string    `json:"restaurant_id"`
	PreparationMinutes     int       `json:"preparation_minutes"`
	QueueWaitMinutes       int       `json:"queue_wait_minutes"`
	TotalProcessingMinutes int       `json:"total_processing_minutes"`
	KitchenLoadPercent     float64   `json:"kitchen_load_percent"`
	OrderComplexity        float64   `json:"order_complexity"`
	OccurredAt             time.Time `json:"occurred_at"`
}

// PublishOrderCreated announces a newly placed order.
func (p *EventPublisher) PublishOrderCreated(ctx context.Context, aggregate *order.Order) error {
	return p.publish(ctx, orderCreatedKey, newOrderEvent("order_created", aggregate))
}

// PublishOrderStatusUpdated announces an order's status change.
func (p *EventPublisher) PublishOrderStatusUpdated(ctx context.Context, aggregate *order.Order, previous order.Status) error {
	event := newOrderEvent("order_status_updated", aggregate)
	event.PreviousStatus = previous.String()
	return p.publish(ctx, orderStatusKey, event)
}

// PublishOrderQueued announces that an order entered the processing queue.
func (p *EventPublisher) PublishOrderQueued(ctx context.Context, aggregate *order.Order) error {
	return p.publish(ctx, orderQueuedKey, newOrderEvent("order_queued", aggregate))
}

// PublishOrderRemovedFromQueue announces that an order left the queue.
func (p *EventPublisher) PublishOrderRemovedFromQueue(ctx context.Context, orderID kernel.UUID) error {
	return p.publish(ctx, orderRemovedKey, orderEvent{
		EventType:  "order_removed_from_queue",
		OrderID:    orderID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

// PublishMetricsRecorded announces that a metrics record was captured.
func (p *EventPublisher) PublishMetricsRecorded(ctx context.Context, record *metrics.Metric) error {
	return p.publish(ctx, metricsRecordedKey, metricsEvent{
		EventType:              "metrics_recorded",
		MetricID:               record.ID().String(),
		OrderID:                record.OrderID().String(),
		RestaurantID:           record.RestaurantID().String(),
		PreparationMinutes:     record.PreparationMinutes(),
		QueueWaitMinutes:       record.QueueWaitMinutes(),
		TotalProcessingMinutes: record.TotalProcessingMinutes(),
		KitchenLoadPercent:     record.KitchenLoadPercent(),
		OrderComplexity:        record.OrderComplexity(),
		OccurredAt:             time.Now().UTC(),
	})
}

func (p *EventPublisher) publish(ctx context.Context, key string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, Exchange, key, body, eventContentType, persistentDelivery)
}

func newOrderEvent(eventType string, aggregate *order.Order) orderEvent {
	return orderEvent{
		EventType:            eventType,
		OrderID:              aggregate.ID().String(),
		OrderNumber:          aggregate.Number(),
		RestaurantID:         aggregate.RestaurantID().String(),
		OrderType:            aggregate.OrderType().String(),
		Priority:             aggregate.Priority().String(),
		Status:               aggregate.Status().String(),
		EstimatedPrepMinutes: aggregate.EstimatedPrepMinutes(),
		OccurredAt:           time.Now().UTC(),
	}
}
