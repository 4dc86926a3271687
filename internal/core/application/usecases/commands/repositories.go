// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit notification dispatch.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// GroupRepoFactory provides access to the order group repository within a transaction.
	GroupRepoFactory interface {
		OrderGroupRepository() ports.OrderGroupRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only touch the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across the whole fulfillment tree. Every
	// aggregation trigger uses this: even a service-level mutation may
	// need to write the order row at the top of the cascade.
	UoW interface {
		TxManager
		OrderRepoFactory
		GroupRepoFactory
	}

	// UoWFactory creates new unit of work instances for cascade operations.
	UoWFactory interface {
		Create() UoW
	}
)
