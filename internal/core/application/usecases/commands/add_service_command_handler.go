package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/ordergroup"
)

// AddServiceCommandHandler adds a line item to a group. Creation is an
// aggregation trigger like any other mutation: the new Pending service may
// change the group's derived status (e.g. away from Completed).
type AddServiceCommandHandler struct {
	uowFactory UoWFactory
	cascade    StatusCascade
	notifier   Notifier
}

// NewAddServiceCommandHandler creates a handler for adding services.
func NewAddServiceCommandHandler(uowFactory UoWFactory, notifier Notifier) AddServiceCommandHandler {
	return AddServiceCommandHandler{
		uowFactory: uowFactory,
		cascade:    NewStatusCascade(),
		notifier:   notifier,
	}
}

// Handle creates the service under a locked group and recomputes upward.
func (h *AddServiceCommandHandler) Handle(ctx context.Context, cmd AddServiceCommand) error {
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

	// Locking the group also proves it exists before the insert.
	if _, err := repo.GetForUpdate(ctx, cmd.GroupID()); err != nil {
		return err
	}

	service, err := ordergroup.NewService(cmd.ServiceID(), cmd.GroupID(), cmd.Price())
	if err != nil {
		return err
	}

	if err = repo.AddService(ctx, service); err != nil {
		return err
	}

	transitions, err := h.cascade.RecomputeGroup(ctx, uow, cmd.GroupID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Dispatch(ctx, transitions)
	return nil
}
