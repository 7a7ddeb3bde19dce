package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrProcessNextBatchCommandIsNotConstructed = errors.New(
	"ProcessNextBatchCommand must be created via NewProcessNextBatchCommand constructor",
)

// ProcessNextBatchCommand represents a request to start processing the
// highest-priority queued batch at a restaurant.
type ProcessNextBatchCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessNextBatchCommand creates a command to start the restaurant's
// next batch. Validates that the restaurant ID is valid.
func NewProcessNextBatchCommand(restaurantID kernel.UUID) (ProcessNextBatchCommand, error) {
	batchCommand := ProcessNextBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := batchCommand.setRestaurantID(restaurantID); err != nil {
		return ProcessNextBatchCommand{}, err
	}

	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessNextBatchCommand) Validate() error {
	return c.guard.Validate(ErrProcessNextBatchCommandIsNotConstructed)
}

// RestaurantID returns the restaurant whose queue should advance.
func (c ProcessNextBatchCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c *ProcessNextBatchCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}
