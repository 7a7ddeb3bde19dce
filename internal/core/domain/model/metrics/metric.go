package metrics

import (
	"math"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
)

// concurrentOrdersAtFullLoad is how many active orders saturate a kitchen.
const concurrentOrdersAtFullLoad = 10

// OrderComplexity scores how much work an order's line items demand.
//
// Each item contributes one point, each modifier half a point, and special
// instructions one point per item carrying them. The score is rounded to
// one decimal place.
func OrderComplexity(items []order.Item) float64 {
	complexity := float64(len(items))
	for _, item := range items {
		complexity += float64(len(item.Modifiers())) * 0.5
		if item.SpecialInstructions() != "" {
			complexity++
		}
	}

	return math.Round(complexity*10) / 10
}

// KitchenLoadPercent converts a count of active orders into a load
// percentage, saturating at 100 once the kitchen works
// concurrentOrdersAtFullLoad orders at once.
func KitchenLoadPercent(activeOrders int) float64 {
	return math.Min(100, float64(activeOrders)/concurrentOrdersAtFullLoad*100)
}

// Metric is an append-only record of how an order moved through the
// kitchen, captured on every status change. Records are never updated
// after creation.
type Metric struct {
	id                     kernel.UUID
	orderID                kernel.UUID
	restaurantID           kernel.UUID
	processedAt            time.Time
	preparationMinutes     int
	queueWaitMinutes       int
	totalProcessingMinutes int
	kitchenLoadPercent     float64
	staffCount             int
	orderComplexity        float64
}

// NewMetric captures a metrics record for an order at the moment of a
// status change.
//
// Parameters:
//   - id: Unique identifier for the record
//   - o: The order being recorded
//   - queueWaitMinutes: Whole minutes the order has waited in queue, zero
//     if it is not queued
//   - activeOrders: Orders currently confirmed or preparing at the
//     restaurant, used to derive the kitchen load
//   - staffCount: Staff on shift at the restaurant
//
// Preparation time prefers the measured value and falls back to the
// estimate while the order is still in progress. Total processing time is
// the whole minutes from creation to completion, zero until the order
// reaches a terminal state.
func NewMetric(id kernel.UUID, o *order.Order, queueWaitMinutes, activeOrders, staffCount int) (*Metric, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	if o == nil {
		return nil, errs.NewValueIsRequiredError("order")
	}

	preparationMinutes := o.EstimatedPrepMinutes()
	if actual := o.ActualPrepMinutes(); actual != nil {
		preparationMinutes = *actual
	}

	totalProcessingMinutes := 0
	if completedAt := o.CompletedAt(); completedAt != nil {
		totalProcessingMinutes = int(completedAt.Sub(o.CreatedAt()).Minutes())
	}

	return &Metric{
		id:                     id,
		orderID:                o.ID(),
		restaurantID:           o.RestaurantID(),
		processedAt:            time.Now(),
		preparationMinutes:     preparationMinutes,
		queueWaitMinutes:       queueWaitMinutes,
		totalProcessingMinutes: totalProcessingMinutes,
		kitchenLoadPercent:     KitchenLoadPercent(activeOrders),
		staffCount:             staffCount,
		orderComplexity:        OrderComplexity(o.Items()),
	}, nil
}

// RestoreMetric reconstructs a Metric from persistence.
func RestoreMetric(
	id kernel.UUID,
	orderID kernel.UUID,
	restaurantID kernel.UUID,
	processedAt time.Time,
	preparationMinutes int,
	queueWaitMinutes int,
	totalProcessingMinutes int,
	kitchenLoadPercent float64,
	staffCount int,
	orderComplexity float64,
) *Metric {
	return &Metric{
		id:                     id,
		orderID:                orderID,
		restaurantID:           restaurantID,
		processedAt:            processedAt,
		preparationMinutes:     preparationMinutes,
		queueWaitMinutes:       queueWaitMinutes,
		totalProcessingMinutes: totalProcessingMinutes,
		kitchenLoadPercent:     kitchenLoadPercent,
		staffCount:             staffCount,
		orderComplexity:        orderComplexity,
	}
}

// ID returns the record's unique identifier.
func (m *Metric) ID() kernel.UUID {
	return m.id
}

// OrderID returns the recorded order's identifier.
func (m *Metric) OrderID() kernel.UUID {
	return m.orderID
}

// RestaurantID returns the restaurant the order belongs to.
func (m *Metric) RestaurantID() kernel.UUID {
	return m.restaurantID
}

// ProcessedAt returns when the record was captured.
func (m *Metric) ProcessedAt() time.Time {
	return m.processedAt
}

// PreparationMinutes returns the order's preparation time, measured when
// available, estimated otherwise.
func (m *Metric) PreparationMinutes() int {
	return m.preparationMinutes
}

// QueueWaitMinutes returns how long the order had waited in queue.
func (m *Metric) QueueWaitMinutes() int {
	return m.queueWaitMinutes
}

// TotalProcessingMinutes returns the creation-to-completion time, zero for
// orders still in progress.
func (m *Metric) TotalProcessingMinutes() int {
	return m.totalProcessingMinutes
}

// KitchenLoadPercent returns the kitchen load at capture time.
func (m *Metric) KitchenLoadPercent() float64 {
	return m.kitchenLoadPercent
}

// StaffCount returns the staff on shift at capture time.
func (m *Metric) StaffCount() int {
	return m.staffCount
}

// OrderComplexity returns the order's complexity score.
func (m *Metric) OrderComplexity() float64 {
	return m.orderComplexity
}
