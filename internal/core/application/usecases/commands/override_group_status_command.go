package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/pkg/guard"
)

var ErrOverrideGroupStatusCommandIsNotConstructed = errors.New(
	"OverrideGroupStatusCommand must be created via NewOverrideGroupStatusCommand constructor",
)

// OverrideGroupStatusCommand represents a manual, back-office override of a
// group's status. This is the direct entry into the order-level aggregator:
// the override is written as-is and only the order above is recomputed,
// never the services below.
type OverrideGroupStatusCommand struct { //nolint:recvcheck //using for validation
	groupID   kernel.UUID
	newStatus ordergroup.Status

	guard guard.ConstructorGuard
}

// NewOverrideGroupStatusCommand creates a command to override a group status.
func NewOverrideGroupStatusCommand(
	groupID kernel.UUID,
	newStatus ordergroup.Status,
) (OverrideGroupStatusCommand, error) {
	cmd := OverrideGroupStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupID(groupID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return OverrideGroupStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OverrideGroupStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideGroupStatusCommandIsNotConstructed)
}

// GroupID returns the identifier of the group to override.
func (c OverrideGroupStatusCommand) GroupID() kernel.UUID {
	return c.groupID
}

// NewStatus returns the status to write.
func (c OverrideGroupStatusCommand) NewStatus() ordergroup.Status {
	return c.newStatus
}

func (c *OverrideGroupStatusCommand) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}
	c.groupID = groupID
	return nil
}

func (c *OverrideGroupStatusCommand) setNewStatus(newStatus ordergroup.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}
