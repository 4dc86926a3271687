package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the derived lifecycle state of an order.
//
// Unlike a classic state machine, an order status is never transitioned
// directly by callers: it is always recomputed from the statuses of the
// order's current groups. The enum therefore only provides validation and
// string conversion; the derivation rules live in the status lattice
// (internal/core/domain/services).
//
// Status meanings:
//
//	Draft                     - the order has no groups yet
//	PendingAgencyConfirmation - groups exist, none accepted or rejected yet
//	PartiallyConfirmed        - some (not all) groups accepted or completed
//	Confirmed                 - every group accepted, or every group completed
//	Cancelled                 - at least one group rejected
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status of an order with no groups.
	Draft

	// PendingAgencyConfirmation indicates groups exist but none of them
	// has been accepted, completed, or rejected yet.
	PendingAgencyConfirmation

	// PartiallyConfirmed indicates some but not all groups have been
	// accepted or completed.
	PartiallyConfirmed

	// Confirmed indicates every group has been accepted, or every group
	// has been completed. The root level does not distinguish the two.
	Confirmed

	// Cancelled indicates at least one group was rejected. Rejection at
	// group level overrides any other sibling status.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                   "Unknown",
		Draft:                     "Draft",
		PendingAgencyConfirmation: "PendingAgencyConfirmation",
		PartiallyConfirmed:        "PartiallyConfirmed",
		Confirmed:                 "Confirmed",
		Cancelled:                 "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:                     "Draft",
		PendingAgencyConfirmation: "PendingAgencyConfirmation",
		PartiallyConfirmed:        "PartiallyConfirmed",
		Confirmed:                 "Confirmed",
		Cancelled:                 "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Draft, PendingAgencyConfirmation, PartiallyConfirmed,
// Confirmed, Cancelled. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
