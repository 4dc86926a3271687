package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveServiceCommandIsNotConstructed = errors.New(
	"RemoveServiceCommand must be created via NewRemoveServiceCommand constructor",
)

// RemoveServiceCommand represents a request to delete a line item, either
// reversibly (soft delete) or permanently. Deletion changes the remaining
// sibling set, so it is an aggregation trigger for the owning group.
type RemoveServiceCommand struct { //nolint:recvcheck //using for validation
	serviceID kernel.UUID
	permanent bool

	guard guard.ConstructorGuard
}

// NewRemoveServiceCommand creates a command to delete a service.
// Permanent deletion removes the row; otherwise the service is soft-deleted
// and can be restored later.
func NewRemoveServiceCommand(serviceID kernel.UUID, permanent bool) (RemoveServiceCommand, error) {
	cmd := RemoveServiceCommand{
		permanent: permanent,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setServiceID(serviceID); err != nil {
		return RemoveServiceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveServiceCommand) Validate() error {
	return c.guard.Validate(ErrRemoveServiceCommandIsNotConstructed)
}

// ServiceID returns the identifier of the service to delete.
func (c RemoveServiceCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// Permanent reports whether the deletion is irreversible.
func (c RemoveServiceCommand) Permanent() bool {
	return c.permanent
}

func (c *RemoveServiceCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	c.serviceID = serviceID
	return nil
}
