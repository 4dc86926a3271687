package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"
)

// OrderGroupRepository defines the persistence contract for order group
// aggregates and their services. Services are persisted through the group
// repository because the group row is the serialization point for every
// service-level mutation.
type OrderGroupRepository interface {
	// Add persists a new order group aggregate to storage.
	Add(ctx context.Context, aggregate *ordergroup.OrderGroup) error

	// Update persists changes to an existing order group aggregate.
	Update(ctx context.Context, aggregate *ordergroup.OrderGroup) error

	// Get retrieves an order group by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*ordergroup.OrderGroup, error)

	// GetForUpdate retrieves an order group and takes an exclusive row lock
	// on it for the duration of the surrounding transaction. Every
	// service-level mutation locks its parent group this way before touching
	// the service row, so sibling updates under one group are linearized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*ordergroup.OrderGroup, error)

	// GetStatusesByOrder returns the statuses of all groups of an order,
	// as currently committed or as written earlier in the same transaction.
	GetStatusesByOrder(ctx context.Context, orderID kernel.UUID) ([]ordergroup.Status, error)

	// GetIDsByOrder returns the identifiers of all groups of an order, in
	// ascending ID order. Callers locking several groups of one tree take
	// the locks in this order so two sweeps cannot deadlock each other.
	GetIDsByOrder(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)

	// AddService persists a new service under its group.
	AddService(ctx context.Context, service *ordergroup.Service) error

	// UpdateService persists changes to an existing service, including its
	// soft-delete flag.
	UpdateService(ctx context.Context, service *ordergroup.Service) error

	// GetService retrieves a service by its unique identifier, whether or
	// not it is soft-deleted.
	GetService(ctx context.Context, id kernel.UUID) (*ordergroup.Service, error)

	// GetServiceStatusesByGroup returns the statuses of the group's live
	// (non-deleted) services. This is the aggregation read: it must reflect
	// the post-mutation child set, never a cached one.
	GetServiceStatusesByGroup(ctx context.Context, groupID kernel.UUID) ([]ordergroup.Status, error)

	// PurgeService permanently deletes a service row.
	PurgeService(ctx context.Context, id kernel.UUID) error

	// GetOrderIDsTouchedSince returns identifiers of orders whose groups or
	// services changed after the given instant. Used by the reconciliation
	// job to find trees worth recomputing.
	GetOrderIDsTouchedSince(ctx context.Context, since time.Time) ([]kernel.UUID, error)
}
