package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// ReconcileStatusesCommandHandler sweeps order trees touched within the
// command's window and recomputes their derived statuses bottom-up. Each tree
// runs in its own transaction so a broken tree cannot block the rest of the
// sweep, and the usual locking order (groups before the order) is preserved.
type ReconcileStatusesCommandHandler struct {
	uowFactory UoWFactory
	cascade    StatusCascade
	notifier   Notifier
	clock      func() time.Time
}

// NewReconcileStatusesCommandHandler creates a handler for reconciliation sweeps.
func NewReconcileStatusesCommandHandler(uowFactory UoWFactory, notifier Notifier) ReconcileStatusesCommandHandler {
	return ReconcileStatusesCommandHandler{
		uowFactory: uowFactory,
		cascade:    NewStatusCascade(),
		notifier:   notifier,
		clock:      time.Now,
	}
}

// Handle recomputes every order tree touched within the window. Per-tree
// failures are accumulated and returned together after the sweep finishes.
func (h *ReconcileStatusesCommandHandler) Handle(ctx context.Context, cmd ReconcileStatusesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderIDs, err := h.touchedOrders(ctx, h.clock().Add(-cmd.Window()))
	if err != nil {
		return err
	}

	var errSweep error
	for _, orderID := range orderIDs {
		if err = h.reconcileTree(ctx, orderID); err != nil {
			errSweep = errors.Join(errSweep, err)
		}
	}

	return errSweep
}

func (h *ReconcileStatusesCommandHandler) touchedOrders(
	ctx context.Context,
	since time.Time,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderIDs, err := uow.OrderGroupRepository().GetOrderIDsTouchedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return orderIDs, nil
}

func (h *ReconcileStatusesCommandHandler) reconcileTree(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	groupIDs, err := uow.OrderGroupRepository().GetIDsByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	// Group locks are taken in the ID order GetIDsByOrder returns, and the
	// order lock strictly after the last one. That keeps the sweep's lock
	// order identical to the mutation triggers (group before order): taking
	// the order lock mid-loop would invert it against a concurrent service
	// mutation on a later group.
	var groupTransitions []services.StatusTransition
	for _, groupID := range groupIDs {
		transition, errGroup := h.cascade.RecomputeGroupStatus(ctx, uow, groupID)
		if errGroup != nil {
			return errGroup
		}
		if transition != nil {
			groupTransitions = append(groupTransitions, *transition)
		}
	}

	// One order recompute per tree, after every group settled. Also covers
	// orders whose groups are all consistent but whose own status drifted,
	// including orders with no groups at all.
	owner, orderTransitions, err := h.cascade.RecomputeOrder(ctx, uow, orderID)
	if err != nil {
		return err
	}
	for i := range groupTransitions {
		groupTransitions[i].PlacedBy = owner.PlacedBy()
	}
	transitions := append(groupTransitions, orderTransitions...)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Dispatch(ctx, transitions)
	return nil
}
