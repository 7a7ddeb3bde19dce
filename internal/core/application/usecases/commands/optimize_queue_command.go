package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrOptimizeQueueCommandIsNotConstructed = errors.New(
	"OptimizeQueueCommand must be created via NewOptimizeQueueCommand constructor",
)

// OptimizeQueueCommand represents a request to rebuild a restaurant's
// queued batches into homogeneous, right-sized groups.
type OptimizeQueueCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOptimizeQueueCommand creates a command to optimize the restaurant's
// queue. Validates that the restaurant ID is valid.
func NewOptimizeQueueCommand(restaurantID kernel.UUID) (OptimizeQueueCommand, error) {
	queueCommand := OptimizeQueueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := queueCommand.setRestaurantID(restaurantID); err != nil {
		return OptimizeQueueCommand{}, err
	}

	return queueCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c OptimizeQueueCommand) Validate() error {
	return c.guard.Validate(ErrOptimizeQueueCommandIsNotConstructed)
}

// RestaurantID returns the restaurant whose queue should be rebuilt.
func (c OptimizeQueueCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c *OptimizeQueueCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}
