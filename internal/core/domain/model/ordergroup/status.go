package ordergroup

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the state of an order group or of one of its services.
// Both levels share the same enum domain: a service's status is set directly
// by the provider working the line item, while a group's status is always
// derived from its live services by the status lattice.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the provider has not reacted yet.
	Pending

	// Accepted indicates the provider agreed to perform the work.
	Accepted

	// Rejected indicates the provider declined. At group level a single
	// rejected service overrides every other sibling status.
	Rejected

	// InProgress indicates work on the item has started.
	InProgress

	// Completed indicates the work is finished.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Accepted:   "Accepted",
		Rejected:   "Rejected",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Accepted:   "Accepted",
		Rejected:   "Rejected",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Accepted, Rejected, InProgress, Completed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as produced by String.
// Returns an error for unknown names, including "Unknown" itself.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}
