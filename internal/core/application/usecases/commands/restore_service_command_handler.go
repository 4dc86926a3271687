package commands

import (
	"context"
)

// RestoreServiceCommandHandler reverses a soft delete. The restored service
// rejoins the live sibling set, so the group is recomputed with it included.
type RestoreServiceCommandHandler struct {
	uowFactory UoWFactory
	cascade    StatusCascade
	notifier   Notifier
}

// NewRestoreServiceCommandHandler creates a handler for service restores.
func NewRestoreServiceCommandHandler(uowFactory UoWFactory, notifier Notifier) RestoreServiceCommandHandler {
	return RestoreServiceCommandHandler{
		uowFactory: uowFactory,
		cascade:    NewStatusCascade(),
		notifier:   notifier,
	}
}

// Handle restores the service under its locked group and recomputes upward.
func (h *RestoreServiceCommandHandler) Handle(ctx context.Context, cmd RestoreServiceCommand) error {
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

	if _, err = repo.GetForUpdate(ctx, service.GroupID()); err != nil {
		return err
	}

	// Re-read under the group lock so a mutation committed while waiting for
	// the lock cannot be overwritten with the pre-lock state.
	service, err = repo.GetService(ctx, cmd.ServiceID())
	if err != nil {
		return err
	}

	if err = service.Restore(); err != nil {
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
