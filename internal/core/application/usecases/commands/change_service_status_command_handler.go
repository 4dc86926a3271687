package commands

import (
	"context"
)

// ChangeServiceStatusCommandHandler handles the service status mutation and
// runs the upward aggregation cascade in the same transaction.
//
// The read-modify-write is serialized on the parent group row: the group is
// locked before the service row is touched, so two providers updating two
// siblings of the same group concurrently cannot lose each other's update.
// An unchanged derived status commits without a write and without an event.
type ChangeServiceStatusCommandHandler struct {
	uowFactory UoWFactory
	cascade    StatusCascade
	notifier   Notifier
}

// NewChangeServiceStatusCommandHandler creates a handler for service status mutations.
func NewChangeServiceStatusCommandHandler(uowFactory UoWFactory, notifier Notifier) ChangeServiceStatusCommandHandler {
	return ChangeServiceStatusCommandHandler{
		uowFactory: uowFactory,
		cascade:    NewStatusCascade(),
		notifier:   notifier,
	}
}

// Handle processes the status mutation. On a real group or order change it
// dispatches one event per changed level after the commit.
func (h *ChangeServiceStatusCommandHandler) Handle(ctx context.Context, cmd ChangeServiceStatusCommand) error {
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

	service, err := repo.GetService(ctx, cmd.ServiceID())
	if err != nil {
		return err
	}

	// Lock the parent group before writing the child: the whole
	// read-modify-write below must be serialized per group.
	if _, err = repo.GetForUpdate(ctx, service.GroupID()); err != nil {
		return err
	}

	// The pre-lock read only resolved the parent group. Re-read the service
	// under the lock: a sibling mutation (a soft delete, say) may have
	// committed while this transaction waited for it, and writing the stale
	// aggregate back would undo it.
	service, err = repo.GetService(ctx, cmd.ServiceID())
	if err != nil {
		return err
	}

	if err = service.ChangeStatus(cmd.NewStatus()); err != nil {
		return err
	}

	if err = repo.UpdateService(ctx, service); err != nil {
		return err
	}

	transitions, err := h.cascade.RecomputeGroup(ctx, uow, service.GroupID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Dispatch(ctx, transitions)
	return nil
}
