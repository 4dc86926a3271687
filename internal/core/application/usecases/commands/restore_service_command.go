package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRestoreServiceCommandIsNotConstructed = errors.New(
	"RestoreServiceCommand must be created via NewRestoreServiceCommand constructor",
)

// RestoreServiceCommand represents a request to reverse a soft delete,
// bringing the service back into its group's aggregation.
type RestoreServiceCommand struct { //nolint:recvcheck //using for validation
	serviceID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRestoreServiceCommand creates a command to restore a soft-deleted service.
func NewRestoreServiceCommand(serviceID kernel.UUID) (RestoreServiceCommand, error) {
	cmd := RestoreServiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setServiceID(serviceID); err != nil {
		return RestoreServiceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RestoreServiceCommand) Validate() error {
	return c.guard.Validate(ErrRestoreServiceCommandIsNotConstructed)
}

// ServiceID returns the identifier of the service to restore.
func (c RestoreServiceCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

func (c *RestoreServiceCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	c.serviceID = serviceID
	return nil
}
