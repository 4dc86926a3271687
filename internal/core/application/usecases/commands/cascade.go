package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// StatusCascade is the hierarchical status-aggregation engine. It recomputes
// a parent's status from its children inside the caller's transaction and
// reports the real transitions it performed.
//
// Two levels exist and each one only ever reaches upward:
//
//   - RecomputeGroup derives an order group's status from its live services
//     and, when that produced a change, continues into RecomputeOrder.
//   - RecomputeOrder derives an order's status from its groups and stops.
//
// The group write inside RecomputeGroup goes through the aggregate's raw
// ApplyDerivedStatus path, so it is never mistaken for a service-level
// mutation: the cascade cannot re-enter its own level.
//
// Every recomputation locks the parent row (SELECT ... FOR UPDATE) before
// reading the child set, so concurrent sibling mutations under one parent
// are linearized and the last commit always reflects the full committed
// child set. Recomputation is pure and idempotent: an unchanged result
// produces no write and no transition, and a failed transaction can simply
// be retried by the caller.
type StatusCascade struct{}

// NewStatusCascade creates a StatusCascade.
func NewStatusCascade() StatusCascade {
	return StatusCascade{}
}

// RecomputeGroup runs the service-to-group aggregation for the given group
// and cascades into the order level when the group actually changed.
//
// Returns the transitions performed: none when the derived status equals the
// stored one, the group transition alone when the order absorbed the change,
// or both when the order moved too.
//
// A missing group surfaces as an ObjectNotFoundError from the repository:
// structural integrity errors abort the trigger without any write.
func (c StatusCascade) RecomputeGroup(
	ctx context.Context,
	uow UoW,
	groupID kernel.UUID,
) ([]services.StatusTransition, error) {
	groupTransition, err := c.RecomputeGroupStatus(ctx, uow, groupID)
	if err != nil {
		return nil, err
	}
	if groupTransition == nil {
		return nil, nil
	}

	owner, orderTransitions, err := c.RecomputeOrder(ctx, uow, groupTransition.OrderID)
	if err != nil {
		return nil, err
	}
	groupTransition.PlacedBy = owner.PlacedBy()

	return append([]services.StatusTransition{*groupTransition}, orderTransitions...), nil
}

// RecomputeGroupStatus runs only the service-to-group aggregation for the
// given group, under its row lock. It never reaches the order level; callers
// that need the order recomputed continue with RecomputeOrder themselves,
// after every group lock of the tree they touch has been taken.
//
// Returns nil when the derived status equals the stored one. A returned
// transition carries no PlacedBy because the order aggregate was not read;
// the caller fills it in once the order is locked.
func (c StatusCascade) RecomputeGroupStatus(
	ctx context.Context,
	uow UoW,
	groupID kernel.UUID,
) (*services.StatusTransition, error) {
	repo := uow.OrderGroupRepository()

	group, err := repo.GetForUpdate(ctx, groupID)
	if err != nil {
		return nil, err
	}

	statuses, err := repo.GetServiceStatusesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	newStatus := services.GroupStatusFor(statuses)
	if newStatus == group.Status() {
		return nil, nil
	}

	oldStatus := group.Status()
	if err = group.ApplyDerivedStatus(newStatus); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, group); err != nil {
		return nil, err
	}

	return &services.StatusTransition{
		Kind:       services.NodeKindOrderGroup,
		NodeID:     group.ID(),
		OrderID:    group.OrderID(),
		ProviderID: group.ProviderID(),
		From:       oldStatus.String(),
		To:         newStatus.String(),
	}, nil
}

// RecomputeOrder runs the group-to-order aggregation for the given order.
// It never descends back into the group level.
//
// The locked order aggregate is returned alongside the transitions so
// callers can attribute group-level events to the order's placing actor
// without an extra read.
func (c StatusCascade) RecomputeOrder(
	ctx context.Context,
	uow UoW,
	orderID kernel.UUID,
) (*order.Order, []services.StatusTransition, error) {
	ord, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	statuses, err := uow.OrderGroupRepository().GetStatusesByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	newStatus := services.OrderStatusFor(statuses)
	if newStatus == ord.Status() {
		return ord, nil, nil
	}

	oldStatus := ord.Status()
	if err = ord.ApplyDerivedStatus(newStatus); err != nil {
		return nil, nil, err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return nil, nil, err
	}

	return ord, []services.StatusTransition{{
		Kind:     services.NodeKindOrder,
		NodeID:   ord.ID(),
		OrderID:  ord.ID(),
		PlacedBy: ord.PlacedBy(),
		From:     oldStatus.String(),
		To:       newStatus.String(),
	}}, nil
}
