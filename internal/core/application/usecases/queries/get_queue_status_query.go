package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetQueueStatusQueryIsNotConstructed = errors.New(
	"GetQueueStatusQuery must be created via NewGetQueueStatusQuery constructor",
)

// GetQueueStatusQuery retrieves a restaurant's current queue summary:
// how much work is queued, how much is processing, and the expected wait.
type GetQueueStatusQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetQueueStatusQuery creates a query for the restaurant's queue status.
// Validates that the restaurant ID is valid.
func NewGetQueueStatusQuery(restaurantID kernel.UUID) (GetQueueStatusQuery, error) {
	statusQuery := GetQueueStatusQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := statusQuery.setRestaurantID(restaurantID); err != nil {
		return GetQueueStatusQuery{}, err
	}

	return statusQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetQueueStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetQueueStatusQueryIsNotConstructed)
}

// RestaurantID returns the restaurant being queried.
func (q GetQueueStatusQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

func (q *GetQueueStatusQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	q.restaurantID = restaurantID
	return nil
}
