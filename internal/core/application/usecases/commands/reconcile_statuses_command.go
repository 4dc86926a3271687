package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReconcileStatusesCommandIsNotConstructed = errors.New(
	"ReconcileStatusesCommand must be created via NewReconcileStatusesCommand constructor",
)

const maxReconcileWindow = 30 * 24 * time.Hour

// ReconcileStatusesCommand requests a sweep over recently touched order trees,
// recomputing every derived status. Reconciliation is a safety net: when the
// aggregation invariants hold it writes nothing and emits nothing.
type ReconcileStatusesCommand struct { //nolint:recvcheck //using for validation
	window time.Duration

	guard guard.ConstructorGuard
}

// NewReconcileStatusesCommand creates a command to reconcile trees touched
// within the given look-back window.
func NewReconcileStatusesCommand(window time.Duration) (ReconcileStatusesCommand, error) {
	if window <= 0 || window > maxReconcileWindow {
		return ReconcileStatusesCommand{}, errs.NewValueIsOutOfRangeError("window", window, time.Nanosecond, maxReconcileWindow)
	}

	return ReconcileStatusesCommand{
		window: window,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileStatusesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileStatusesCommandIsNotConstructed)
}

// Window returns the look-back window.
func (c ReconcileStatusesCommand) Window() time.Duration {
	return c.window
}
