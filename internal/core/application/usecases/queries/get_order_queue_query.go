package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetOrderQueueQueryIsNotConstructed = errors.New(
	"GetOrderQueueQuery must be created via NewGetOrderQueueQuery constructor",
)

// GetOrderQueueQuery retrieves the priority queue's entries, either for a
// single restaurant or across all of them.
type GetOrderQueueQuery struct { //nolint:recvcheck //using for validation
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQueueQuery creates a query over the whole queue.
func NewGetOrderQueueQuery() GetOrderQueueQuery {
	return GetOrderQueueQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrderQueueQueryForRestaurant creates a query scoped to one
// restaurant. Validates that the restaurant ID is valid.
func NewGetOrderQueueQueryForRestaurant(restaurantID kernel.UUID) (GetOrderQueueQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetOrderQueueQuery{}, err
	}

	return GetOrderQueueQuery{
		restaurantID: &restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueueQueryIsNotConstructed)
}

// RestaurantID returns the restaurant filter, nil when unscoped.
func (q GetOrderQueueQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

// GetOrderQueueQueryResponse represents one queue entry in priority order.
type GetOrderQueueQueryResponse struct {
	OrderID          kernel.UUID
	RestaurantID     kernel.UUID
	Priority         string
	EstimatedMinutes int
	StaffRequired    int
	WaitMinutes      int
}
