package order

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Item is a line item on an order: a menu entry with a quantity,
// optional modifiers, and optional special instructions.
//
// Item is an immutable value object; use NewItem to construct it.
type Item struct {
	name                string
	quantity            int
	modifiers           []string
	specialInstructions string
}

// NewItem creates a validated line item.
//
// Parameters:
//   - name: the menu entry name (required)
//   - quantity: how many units were ordered (must be positive)
//   - modifiers: optional preparation modifiers ("no onions", "extra cheese")
//   - specialInstructions: optional free-form kitchen notes
//
// Returns:
//   - Item: the created line item if validation passes
//   - error: validation error if name is empty or quantity is not positive
func NewItem(name string, quantity int, modifiers []string, specialInstructions string) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		name:                name,
		quantity:            quantity,
		modifiers:           append([]string(nil), modifiers...),
		specialInstructions: specialInstructions,
	}, nil
}

// Name returns the menu entry name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// Modifiers returns a copy of the preparation modifiers.
func (i Item) Modifiers() []string {
	return append([]string(nil), i.modifiers...)
}

// SpecialInstructions returns the free-form kitchen notes, if any.
func (i Item) SpecialInstructions() string {
	return i.specialInstructions
}
