package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderGroupCommandIsNotConstructed = errors.New(
	"CreateOrderGroupCommand must be created via NewCreateOrderGroupCommand constructor",
)

// CreateOrderGroupCommand represents a request to split a provider's slice
// off an order: a new group under the order, assigned to one provider
// organization.
type CreateOrderGroupCommand struct { //nolint:recvcheck //using for validation
	groupID    kernel.UUID
	orderID    kernel.UUID
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderGroupCommand creates a command to add a group to an order.
func NewCreateOrderGroupCommand(groupID, orderID, providerID kernel.UUID) (CreateOrderGroupCommand, error) {
	cmd := CreateOrderGroupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupID(groupID),
		cmd.setOrderID(orderID),
		cmd.setProviderID(providerID),
	); err != nil {
		return CreateOrderGroupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderGroupCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderGroupCommandIsNotConstructed)
}

// GroupID returns the unique identifier for the group.
func (c CreateOrderGroupCommand) GroupID() kernel.UUID {
	return c.groupID
}

// OrderID returns the identifier of the owning order.
func (c CreateOrderGroupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProviderID returns the identifier of the provider organization.
func (c CreateOrderGroupCommand) ProviderID() kernel.UUID {
	return c.providerID
}

func (c *CreateOrderGroupCommand) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}
	c.groupID = groupID
	return nil
}

func (c *CreateOrderGroupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderGroupCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	c.providerID = providerID
	return nil
}
