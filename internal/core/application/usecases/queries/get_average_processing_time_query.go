package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetAverageProcessingTimeQueryIsNotConstructed = errors.New(
	"GetAverageProcessingTimeQuery must be created via NewGetAverageProcessingTimeQuery constructor",
)

// GetAverageProcessingTimeQuery computes the mean creation-to-completion
// time over a restaurant's completed orders.
type GetAverageProcessingTimeQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAverageProcessingTimeQuery creates the query.
// Validates that the restaurant ID is valid.
func NewGetAverageProcessingTimeQuery(restaurantID kernel.UUID) (GetAverageProcessingTimeQuery, error) {
	averageQuery := GetAverageProcessingTimeQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := averageQuery.setRestaurantID(restaurantID); err != nil {
		return GetAverageProcessingTimeQuery{}, err
	}

	return averageQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAverageProcessingTimeQuery) Validate() error {
	return q.guard.Validate(ErrGetAverageProcessingTimeQueryIsNotConstructed)
}

// RestaurantID returns the restaurant being queried.
func (q GetAverageProcessingTimeQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

func (q *GetAverageProcessingTimeQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	q.restaurantID = restaurantID
	return nil
}
