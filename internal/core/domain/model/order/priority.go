package order

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Priority represents the urgency level of an order.
// Priorities carry strictly increasing numeric weights that drive
// queue ordering and batch compatibility decisions.
//
// Priority is a value object; the zero value is invalid and must be
// constructed from one of the defined constants or PriorityFromString.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// Low priority orders yield to everything else in the queue.
	Low

	// Normal is the default priority for new orders.
	Normal

	// High priority orders are placed ahead of normal and low traffic.
	High

	// Urgent is the highest priority tier.
	Urgent
)

// getPriorityStrings returns a map of Priority values to their string representations.
func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "unknown",
		Low:             "low",
		Normal:          "normal",
		High:            "high",
		Urgent:          "urgent",
	}
}

// getValidPriorityStrings returns a map of only valid Priority values.
func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		Low:    "low",
		Normal: "normal",
		High:   "high",
		Urgent: "urgent",
	}
}

// PriorityFromString parses the canonical string representation of a priority.
func PriorityFromString(s string) (Priority, error) {
	for priority, str := range getValidPriorityStrings() {
		if str == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks if the Priority value is valid.
// Valid priorities are: low, normal, high, urgent.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the human-readable name of the priority.
// Returns "unknown" for invalid values.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Weight returns the numeric weight of the priority used for queue
// ordering and batch scoring: low=1, normal=2, high=3, urgent=4.
func (p Priority) Weight() int {
	return int(p)
}
