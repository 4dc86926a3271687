package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// OverrideGroupStatusCommandHandler writes a manual group status and
// recomputes the owning order. It enters the cascade at the middle level:
// the group's own services are deliberately left alone.
type OverrideGroupStatusCommandHandler struct {
	uowFactory UoWFactory
	cascade    StatusCascade
	notifier   Notifier
}

// NewOverrideGroupStatusCommandHandler creates a handler for manual group overrides.
func NewOverrideGroupStatusCommandHandler(uowFactory UoWFactory, notifier Notifier) OverrideGroupStatusCommandHandler {
	return OverrideGroupStatusCommandHandler{
		uowFactory: uowFactory,
		cascade:    NewStatusCascade(),
		notifier:   notifier,
	}
}

// Handle writes the override under a group lock. Writing the status the
// group already has commits without a write and without an event.
func (h *OverrideGroupStatusCommandHandler) Handle(ctx context.Context, cmd OverrideGroupStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderGroupRepository()

	group, err := repo.GetForUpdate(ctx, cmd.GroupID())
	if err != nil {
		return err
	}

	if group.Status() == cmd.NewStatus() {
		return uow.Commit(ctx)
	}

	oldStatus := group.Status()
	if err = group.OverrideStatus(cmd.NewStatus()); err != nil {
		return err
	}
	if err = repo.Update(ctx, group); err != nil {
		return err
	}

	owner, orderTransitions, err := h.cascade.RecomputeOrder(ctx, uow, group.OrderID())
	if err != nil {
		return err
	}

	transitions := append([]services.StatusTransition{{
		Kind:       services.NodeKindOrderGroup,
		NodeID:     group.ID(),
		OrderID:    group.OrderID(),
		ProviderID: group.ProviderID(),
		PlacedBy:   owner.PlacedBy(),
		From:       oldStatus.String(),
		To:         cmd.NewStatus().String(),
	}}, orderTransitions...)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Dispatch(ctx, transitions)
	return nil
}
