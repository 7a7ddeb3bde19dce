package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired          = errors.New("at least one item is required")
	ErrEstimatedMinutesIsInvalid = errors.New("estimated preparation minutes must be greater than 0")
)

// CreateOrderCommand represents a request to place a new kitchen order.
// Encapsulates the restaurant, fulfillment type, priority, line items, and
// the nominal preparation time.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, restaurantID, order.DineIn, order.Normal, items, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, queue, scheduler, publisher, cache)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	restaurantID         kernel.UUID
	orderType            order.Type
	priority             order.Priority
	items                []order.Item
	estimatedPrepMinutes int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, enumerations, items, and the preparation estimate.
// Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	restaurantID kernel.UUID,
	orderType order.Type,
	priority order.Priority,
	items []order.Item,
	estimatedPrepMinutes int,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setRestaurantID(restaurantID),
		orderCommand.setOrderType(orderType),
		orderCommand.setPriority(priority),
		orderCommand.setItems(items),
		orderCommand.setEstimatedPrepMinutes(estimatedPrepMinutes),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the restaurant the order is placed at.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// OrderType returns the fulfillment type.
func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

// Priority returns the requested priority tier.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// Items returns a copy of the order's line items.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// EstimatedPrepMinutes returns the nominal preparation time.
func (c CreateOrderCommand) EstimatedPrepMinutes() int {
	return c.estimatedPrepMinutes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setEstimatedPrepMinutes(estimatedPrepMinutes int) error {
	if estimatedPrepMinutes <= 0 {
		return ErrEstimatedMinutesIsInvalid
	}

	c.estimatedPrepMinutes = estimatedPrepMinutes
	return nil
}
