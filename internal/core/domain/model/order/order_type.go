package order

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Type represents the fulfilment channel of an order.
// Orders of different types are never batched together.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// DineIn orders are served at the restaurant.
	DineIn

	// Takeout orders are picked up by the customer.
	Takeout

	// Delivery orders are handed off to a courier.
	Delivery
)

// getTypeStrings returns a map of Type values to their string representations.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "unknown",
		DineIn:      "dine-in",
		Takeout:     "takeout",
		Delivery:    "delivery",
	}
}

// getValidTypeStrings returns a map of only valid Type values.
func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		DineIn:   "dine-in",
		Takeout:  "takeout",
		Delivery: "delivery",
	}
}

// TypeFromString parses the canonical string representation of an order type.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type",
		fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks if the Type value is valid.
// Valid types are: dine-in, takeout, delivery.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order type is invalid",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the human-readable name of the order type.
// Returns "unknown" for invalid values.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
