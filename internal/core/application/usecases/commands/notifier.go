package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// Notifier receives the transitions a committed command produced and emits
// one outbound event per transition. Dispatch is fire-and-forget from the
// handler's perspective: delivery failures are the transport's problem and
// never fail the command.
//
// Handlers must only call Dispatch after a successful commit, so an aborted
// transaction never produces an event.
type Notifier interface {
	Dispatch(ctx context.Context, transitions []services.StatusTransition)
}

// NopNotifier discards all transitions. Used in tests and tooling that do
// not care about outbound events.
type NopNotifier struct{}

// Dispatch implements Notifier by doing nothing.
func (NopNotifier) Dispatch(_ context.Context, _ []services.StatusTransition) {}
