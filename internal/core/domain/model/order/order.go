package order

import (
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a restaurant order in the system. It is the aggregate root that
// manages the order lifecycle from intake through preparation to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and restaurant identifier
//   - Must contain at least one line item
//   - Estimated preparation time must be positive
//   - Status only changes through validated state machine transitions
//   - The completion timestamp is stamped exactly once, on entering a terminal state
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number shown on kitchen tickets
	number string

	// restaurantID identifies the restaurant the order belongs to
	restaurantID kernel.UUID

	// orderType is the fulfilment channel (dine-in, takeout, delivery)
	orderType Type

	// priority is the urgency tier driving queue placement
	priority Priority

	// items are the ordered line items (at least one)
	items []Item

	// status is the current state in the order lifecycle
	status Status

	// estimatedPrepMinutes is the nominal preparation time in whole minutes
	estimatedPrepMinutes int

	// actualPrepMinutes is the measured preparation time, set on batch completion
	actualPrepMinutes *int

	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. The order starts in
// Pending status with a freshly generated order number.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid)
//   - restaurantID: Identifier of the owning restaurant (must be valid)
//   - orderType: Fulfilment channel (must be a valid Type)
//   - priority: Urgency tier (must be a valid Priority)
//   - items: Line items (must be non-empty)
//   - estimatedPrepMinutes: Nominal preparation time (must be positive)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	orderType Type,
	priority Priority,
	items []Item,
	estimatedPrepMinutes int,
) (*Order, error) {
	now := time.Now()
	o := &Order{
		status:        Pending,
		number:        NewOrderNumber(now),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setOrderType(orderType),
		o.setPriority(priority),
		o.setItems(items),
		o.setEstimatedPrepMinutes(estimatedPrepMinutes),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without regenerating
// identity or timestamps. The provided status must be valid but is not
// re-run through the transition table: the stored state is trusted.
func RestoreOrder(
	id kernel.UUID,
	number string,
	restaurantID kernel.UUID,
	orderType Type,
	priority Priority,
	items []Item,
	status Status,
	estimatedPrepMinutes int,
	actualPrepMinutes *int,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o := &Order{
		number:        number,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setOrderType(orderType),
		o.setPriority(priority),
		o.setItems(items),
		o.setEstimatedPrepMinutes(estimatedPrepMinutes),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if actualPrepMinutes != nil {
		v := *actualPrepMinutes
		o.actualPrepMinutes = &v
	}
	if completedAt != nil {
		t := *completedAt
		o.completedAt = &t
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// RestaurantID returns the identifier of the owning restaurant.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// OrderType returns the fulfilment channel of the order.
func (o *Order) OrderType() Type {
	return o.orderType
}

// Priority returns the urgency tier of the order.
func (o *Order) Priority() Priority {
	return o.priority
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// EstimatedPrepMinutes returns the nominal preparation time in whole minutes.
func (o *Order) EstimatedPrepMinutes() int {
	return o.estimatedPrepMinutes
}

// ActualPrepMinutes returns the measured preparation time.
// Returns nil until the order's batch has completed.
func (o *Order) ActualPrepMinutes() *int {
	if o.actualPrepMinutes == nil {
		return nil
	}
	v := *o.actualPrepMinutes
	return &v
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the most recent mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CompletedAt returns the timestamp of entering a terminal state.
// Returns nil while the order is still live.
func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	t := *o.completedAt
	return &t
}

// UpdateStatus performs a validated transition to the next status.
//
// This method enforces the following business rules:
//   - The transition must be legal per the Status state machine
//   - updatedAt is stamped on every successful transition
//   - completedAt is stamped when entering a terminal state, and only
//     if it has not been stamped before
//
// Returns:
//   - nil on a successful transition
//   - error if the transition is not allowed; the order is left unchanged
func (o *Order) UpdateStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now()

	if newStatus.IsTerminal() && o.completedAt == nil {
		t := o.updatedAt
		o.completedAt = &t
	}

	return nil
}

// BeginPreparation advances the order into Preparing, walking through any
// intermediate states so that every step remains a legal transition:
//
//   - Pending orders are confirmed first, then moved to Preparing
//   - Confirmed orders move directly to Preparing
//   - Preparing orders are left unchanged
//
// Returns an error when the order is in Ready or a terminal state.
// This method is used when a batch containing the order starts processing.
func (o *Order) BeginPreparation() error {
	switch o.status {
	case Preparing:
		return nil
	case Pending:
		if err := o.UpdateStatus(Confirmed); err != nil {
			return err
		}
		return o.UpdateStatus(Preparing)
	case Confirmed:
		return o.UpdateStatus(Preparing)
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to begin preparation", o.status.String()),
		)
	}
}

// FinishProcessing marks the order completed as part of batch completion and
// records the measured preparation time in whole minutes.
//
// Batch completion is unconditional: once a batch is in flight its members
// are finalized without re-validating the state machine, so a member that
// was cancelled mid-flight still receives its timing data. completedAt is
// stamped only if it has not been stamped before.
func (o *Order) FinishProcessing(actualMinutes int) {
	o.status = Completed
	o.actualPrepMinutes = &actualMinutes
	o.updatedAt = time.Now()

	if o.completedAt == nil {
		t := o.updatedAt
		o.completedAt = &t
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurantID", err)
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setOrderType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setEstimatedPrepMinutes(minutes int) error {
	if minutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedPrepMinutes",
			fmt.Errorf("%d is not greater than 0", minutes))
	}
	o.estimatedPrepMinutes = minutes
	return nil
}
