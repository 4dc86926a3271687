package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeServiceStatusCommandIsNotConstructed = errors.New(
	"ChangeServiceStatusCommand must be created via NewChangeServiceStatusCommand constructor",
)

// ChangeServiceStatusCommand represents the external mutation entry of the
// fulfillment tree: a provider accepting, rejecting, progressing, or
// completing one line item. Every other status in the tree is derived from
// mutations like this one.
type ChangeServiceStatusCommand struct { //nolint:recvcheck //using for validation
	serviceID kernel.UUID
	newStatus ordergroup.Status

	guard guard.ConstructorGuard
}

// NewChangeServiceStatusCommand creates a command to set a service's status.
// Validates that the service ID and the target status are valid.
func NewChangeServiceStatusCommand(
	serviceID kernel.UUID,
	newStatus ordergroup.Status,
) (ChangeServiceStatusCommand, error) {
	cmd := ChangeServiceStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setServiceID(serviceID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return ChangeServiceStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeServiceStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeServiceStatusCommandIsNotConstructed)
}

// ServiceID returns the identifier of the service to mutate.
func (c ChangeServiceStatusCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// NewStatus returns the target status.
func (c ChangeServiceStatusCommand) NewStatus() ordergroup.Status {
	return c.newStatus
}

func (c *ChangeServiceStatusCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	c.serviceID = serviceID
	return nil
}

func (c *ChangeServiceStatusCommand) setNewStatus(newStatus ordergroup.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}
