package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created through
// the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the root of the fulfillment tree. It owns zero or more order
// groups, one per provider, and its status is always a pure function of the
// statuses of those groups.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must reference the actor who placed it
//   - Status only changes through ApplyDerivedStatus, driven by the
//     aggregation engine; no caller sets it by hand after creation
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// placedBy is the actor who placed the order. Used as the fallback
	// acting user when a status change happens outside a request context.
	placedBy kernel.UUID

	// status is the derived state, always equal to the lattice function
	// of the current group statuses
	status Status

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Draft status.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - placedBy: Identifier of the actor placing the order (must be valid UUID)
//
// A freshly created order has no groups, and the lattice maps an empty
// group set to Draft, so Draft is both the initial and the derived status.
func NewOrder(id kernel.UUID, placedBy kernel.UUID) (*Order, error) {
	o := &Order{
		status: Draft,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPlacedBy(placedBy),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts an arbitrary valid status, because the stored
// status already reflects past aggregation runs.
func RestoreOrder(id kernel.UUID, placedBy kernel.UUID, status Status) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPlacedBy(placedBy),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value instances.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// PlacedBy returns the identifier of the actor who placed the order.
func (o *Order) PlacedBy() kernel.UUID {
	return o.placedBy
}

// Status returns the current derived status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ApplyDerivedStatus writes a status computed by the aggregation engine.
//
// This is the raw write path of the cascade: it performs no transition
// checks beyond enum validity, because the lattice already decided the
// target value from the full set of group statuses. It must only be called
// by the order-level aggregator; external workflows never set an order
// status directly.
func (o *Order) ApplyDerivedStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setPlacedBy validates and sets the placing actor reference.
func (o *Order) setPlacedBy(placedBy kernel.UUID) error {
	if err := placedBy.Validate(); err != nil {
		return err
	}
	o.placedBy = placedBy
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
