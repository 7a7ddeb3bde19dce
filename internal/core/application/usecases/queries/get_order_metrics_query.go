package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var (
	ErrGetOrderMetricsQueryIsNotConstructed = errors.New(
		"GetOrderMetricsQuery must be created via NewGetOrderMetricsQuery constructor",
	)
	ErrTimeWindowIsInvalid = errors.New("window end must not be before window start")
)

// GetOrderMetricsQuery retrieves a restaurant's metrics records captured
// inside a time window, for analytics and reporting.
type GetOrderMetricsQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	from         time.Time
	to           time.Time

	guard guard.ConstructorGuard
}

// NewGetOrderMetricsQuery creates a metrics window query.
// Validates the restaurant ID and that the window is well-formed.
func NewGetOrderMetricsQuery(restaurantID kernel.UUID, from, to time.Time) (GetOrderMetricsQuery, error) {
	metricsQuery := GetOrderMetricsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		metricsQuery.setRestaurantID(restaurantID),
		metricsQuery.setWindow(from, to),
	); err != nil {
		return GetOrderMetricsQuery{}, err
	}

	return metricsQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderMetricsQueryIsNotConstructed)
}

// RestaurantID returns the restaurant being queried.
func (q GetOrderMetricsQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// From returns the window start.
func (q GetOrderMetricsQuery) From() time.Time {
	return q.from
}

// To returns the window end.
func (q GetOrderMetricsQuery) To() time.Time {
	return q.to
}

func (q *GetOrderMetricsQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	q.restaurantID = restaurantID
	return nil
}

func (q *GetOrderMetricsQuery) setWindow(from, to time.Time) error {
	if to.Before(from) {
		return ErrTimeWindowIsInvalid
	}

	q.from = from
	q.to = to
	return nil
}

// GetOrderMetricsQueryResponse represents one captured metrics record.
type GetOrderMetricsQueryResponse struct {
	ID                     kernel.UUID
	OrderID                kernel.UUID
	ProcessedAt            time.Time
	PreparationMinutes     int
	QueueWaitMinutes       int
	TotalProcessingMinutes int
	KitchenLoadPercent     float64
	StaffCount             int
	OrderComplexity        float64
}
