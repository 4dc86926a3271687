package commands

import (
	"context"
)

// RemoveServiceCommandHandler deletes a line item and recomputes the owning
// group from the post-deletion sibling set. Removing the last live service
// resets the group to Pending through the empty-set rule.
type RemoveServiceCommandHandler struct {
	uowFactory UoWFactory
	cascade    StatusCascade
	notifier   Notifier
}

// NewRemoveServiceCommandHandler creates a handler for service deletions.
func NewRemoveServiceCommandHandler(uowFactory UoWFactory, notifier Notifier) RemoveServiceCommandHandler {
	return RemoveServiceCommandHandler{
		uowFactory: uowFactory,
		cascade:    NewStatusCascade(),
		notifier:   notifier,
	}
}

// Handle deletes the service under its locked group and recomputes upward.
// The aggregation read runs after the delete, so the recomputation sees the
// sibling set without the removed child.
func (h *RemoveServiceCommandHandler) Handle(ctx context.Context, cmd RemoveServiceCommand) error {
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

	if cmd.Permanent() {
		if err = repo.PurgeService(ctx, service.ID()); err != nil {
			return err
		}
	} else {
		if err = service.MarkDeleted(); err != nil {
			return err
		}
		if err = repo.UpdateService(ctx, service); err != nil {
			return err
		}
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
