package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/ordergroup"
)

// CreateOrderGroupCommandHandler adds a provider group to an order. The new
// group starts Pending, which pulls the order out of Draft, so creation runs
// the order-level recomputation like any other group mutation.
type CreateOrderGroupCommandHandler struct {
	uowFactory UoWFactory
	cascade    StatusCascade
	notifier   Notifier
}

// NewCreateOrderGroupCommandHandler creates a handler for adding order groups.
func NewCreateOrderGroupCommandHandler(uowFactory UoWFactory, notifier Notifier) CreateOrderGroupCommandHandler {
	return CreateOrderGroupCommandHandler{
		uowFactory: uowFactory,
		cascade:    NewStatusCascade(),
		notifier:   notifier,
	}
}

// Handle creates the group and recomputes the owning order's status.
func (h *CreateOrderGroupCommandHandler) Handle(ctx context.Context, cmd CreateOrderGroupCommand) error {
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

	group, err := ordergroup.NewOrderGroup(cmd.GroupID(), cmd.OrderID(), cmd.ProviderID())
	if err != nil {
		return err
	}

	if err = uow.OrderGroupRepository().Add(ctx, group); err != nil {
		return err
	}

	// RecomputeOrder locks the order and surfaces a missing one as
	// ObjectNotFound before the insert can commit.
	_, transitions, err := h.cascade.RecomputeOrder(ctx, uow, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Dispatch(ctx, transitions)
	return nil
}
