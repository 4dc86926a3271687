package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/pkg/guard"
)

var ErrAddServiceCommandIsNotConstructed = errors.New(
	"AddServiceCommand must be created via NewAddServiceCommand constructor",
)

// AddServiceCommand represents a request to add a new line item to an order
// group, with the price snapshot captured at placement time.
type AddServiceCommand struct { //nolint:recvcheck //using for validation
	serviceID kernel.UUID
	groupID   kernel.UUID
	price     ordergroup.Price

	guard guard.ConstructorGuard
}

// NewAddServiceCommand creates a command to add a service under a group.
func NewAddServiceCommand(
	serviceID, groupID kernel.UUID,
	price ordergroup.Price,
) (AddServiceCommand, error) {
	cmd := AddServiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setServiceID(serviceID),
		cmd.setGroupID(groupID),
		cmd.setPrice(price),
	); err != nil {
		return AddServiceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddServiceCommand) Validate() error {
	return c.guard.Validate(ErrAddServiceCommandIsNotConstructed)
}

// ServiceID returns the identifier for the new service.
func (c AddServiceCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// GroupID returns the identifier of the owning group.
func (c AddServiceCommand) GroupID() kernel.UUID {
	return c.groupID
}

// Price returns the price snapshot for the new service.
func (c AddServiceCommand) Price() ordergroup.Price {
	return c.price
}

func (c *AddServiceCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	c.serviceID = serviceID
	return nil
}

func (c *AddServiceCommand) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}
	c.groupID = groupID
	return nil
}

func (c *AddServiceCommand) setPrice(price ordergroup.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	c.price = price
	return nil
}
