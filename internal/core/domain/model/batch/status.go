package batch

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Status represents the lifecycle state of a batch.
//
// State transitions:
//
//	queued ──> processing ──> completed
//	                │
//	                └──> failed
//
// A batch accepts new members only while queued; once it leaves queued
// its membership is immutable.
type Status int

const (
	// StatusUnknown represents an invalid or undefined batch status.
	StatusUnknown Status = iota

	// Queued batches sit in a restaurant's batch queue and may still
	// accept compatible orders.
	Queued

	// Processing batches have been dequeued and are being worked on.
	Processing

	// Completed batches finished processing. Terminal.
	Completed

	// Failed batches aborted during processing. Terminal. Retrying a
	// failed batch is a collaborator responsibility, not handled here.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Queued:        "queued",
		Processing:    "processing",
		Completed:     "completed",
		Failed:        "failed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("batch status is invalid",
			fmt.Errorf("%d is not a valid batch status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("batch status is invalid",
			fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// String returns the human-readable name of the batch status.
// Returns "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
