package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand represents a request to finish an in-flight batch.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteBatchCommand creates a command to complete a batch.
// Validates that the batch ID is valid.
func NewCompleteBatchCommand(batchID kernel.UUID) (CompleteBatchCommand, error) {
	batchCommand := CompleteBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := batchCommand.setBatchID(batchID); err != nil {
		return CompleteBatchCommand{}, err
	}

	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch to complete.
func (c CompleteBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *CompleteBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}
