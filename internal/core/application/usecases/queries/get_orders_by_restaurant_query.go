package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetOrdersByRestaurantQueryIsNotConstructed = errors.New(
	"GetOrdersByRestaurantQuery must be created via NewGetOrdersByRestaurantQuery constructor",
)

// GetOrdersByRestaurantQuery retrieves every order placed at a restaurant.
type GetOrdersByRestaurantQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersByRestaurantQuery creates the query.
// Validates that the restaurant ID is valid.
func NewGetOrdersByRestaurantQuery(restaurantID kernel.UUID) (GetOrdersByRestaurantQuery, error) {
	restaurantQuery := GetOrdersByRestaurantQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := restaurantQuery.setRestaurantID(restaurantID); err != nil {
		return GetOrdersByRestaurantQuery{}, err
	}

	return restaurantQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByRestaurantQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByRestaurantQueryIsNotConstructed)
}

// RestaurantID returns the restaurant being queried.
func (q GetOrdersByRestaurantQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

func (q *GetOrdersByRestaurantQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	q.restaurantID = restaurantID
	return nil
}

// OrderView is the shared read model for order listing queries.
type OrderView struct {
	ID                   kernel.UUID
	Number               string
	RestaurantID         kernel.UUID
	OrderType            string
	Priority             string
	Status               string
	EstimatedPrepMinutes int
}
