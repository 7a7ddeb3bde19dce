// Package order provides domain entities and business logic for restaurant
// order management. It implements the Order aggregate root with lifecycle
// management and validated status transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Priority: An urgency level with a numeric weight used for queue ordering
//   - Type: The fulfilment channel of an order (dine-in, takeout, delivery)
//   - Item: A line item with modifiers and special instructions
//
// Key business rules:
//   - Orders must have a valid unique identifier, restaurant, and at least one item
//   - Order status follows a defined workflow:
//     pending -> confirmed -> preparing -> ready -> completed
//     with cancellation allowed from every non-terminal state
//   - completed and cancelled are terminal states with no outgoing transitions
//   - The completion timestamp is stamped once, on entering a terminal state
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
