package ordergroup

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderGroupIsNotConstructed is returned when an OrderGroup instance was not
// created through the NewOrderGroup or RestoreOrderGroup factory functions.
var ErrOrderGroupIsNotConstructed = errors.New(
	"OrderGroup must be created via NewOrderGroup or RestoreOrderGroup constructor",
)

// OrderGroup is the per-provider slice of an order. It owns zero or more
// services (line items) and its status is always derived from the statuses
// of its live services.
//
// The aggregate exposes two distinct write paths for its status:
//
//   - ApplyDerivedStatus: the raw write used by the service-level aggregator.
//     This path performs no transition checks and must never be treated as a
//     service-level mutation, otherwise the cascade would re-enter itself.
//   - OverrideStatus: the manual write used by back-office workflows. A manual
//     override still triggers recomputation one level up, at the order.
type OrderGroup struct {
	// id is the unique identifier for the group
	id kernel.UUID

	// orderID references the owning order
	orderID kernel.UUID

	// providerID references the provider organization fulfilling this group
	providerID kernel.UUID

	// status is derived from the live services of the group
	status Status

	guard guard.ConstructorGuard
}

// NewOrderGroup creates a new OrderGroup in Pending status.
// A freshly created group has no services, and the lattice maps an empty
// service set to Pending.
func NewOrderGroup(id, orderID, providerID kernel.UUID) (*OrderGroup, error) {
	g := &OrderGroup{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		g.setID(id),
		g.setOrderID(orderID),
		g.setProviderID(providerID),
	); err != nil {
		return nil, err
	}

	return g, nil
}

// RestoreOrderGroup reconstructs an OrderGroup aggregate from persistent storage.
func RestoreOrderGroup(id, orderID, providerID kernel.UUID, status Status) (*OrderGroup, error) {
	g := &OrderGroup{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		g.setID(id),
		g.setOrderID(orderID),
		g.setProviderID(providerID),
		g.setStatus(status),
	); err != nil {
		return nil, err
	}

	return g, nil
}

// Validate ensures the OrderGroup instance was properly constructed.
func (g *OrderGroup) Validate() error {
	if g == nil {
		return ErrOrderGroupIsNotConstructed
	}
	return g.guard.Validate(ErrOrderGroupIsNotConstructed)
}

// IsEqual compares two groups by their unique identifiers.
func (g *OrderGroup) IsEqual(other *OrderGroup) bool {
	return other != nil && g.id.IsEqual(other.id)
}

// ID returns the group's unique identifier.
func (g *OrderGroup) ID() kernel.UUID {
	return g.id
}

// OrderID returns the identifier of the owning order.
func (g *OrderGroup) OrderID() kernel.UUID {
	return g.orderID
}

// ProviderID returns the identifier of the provider organization.
func (g *OrderGroup) ProviderID() kernel.UUID {
	return g.providerID
}

// Status returns the current status of the group.
func (g *OrderGroup) Status() Status {
	return g.status
}

// ApplyDerivedStatus writes a status computed by the aggregation engine.
// No transition checks beyond enum validity: the lattice already decided
// the target value from the full set of live service statuses.
func (g *OrderGroup) ApplyDerivedStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	g.status = status
	return nil
}

// OverrideStatus sets the group status by hand, bypassing derivation.
// Used by back-office workflows; the caller is responsible for recomputing
// the owning order afterwards.
func (g *OrderGroup) OverrideStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	g.status = status
	return nil
}

func (g *OrderGroup) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

func (g *OrderGroup) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	g.orderID = orderID
	return nil
}

func (g *OrderGroup) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	g.providerID = providerID
	return nil
}

func (g *OrderGroup) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	g.status = status
	return nil
}
