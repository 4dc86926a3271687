// Package queries contains read operations of the CQRS architecture. Query
// handlers read the database directly with raw SQL; they never load domain
// aggregates and never write.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery retrieves one order with its per-group breakdown:
// derived statuses, live service counts, and price totals.
type GetOrderSummaryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderSummaryQuery creates a query for the given order.
func NewGetOrderSummaryQuery(orderID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSummaryQuery{}, err
	}

	return GetOrderSummaryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to summarize.
func (q GetOrderSummaryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderGroupSummary is one provider's slice of the order.
type OrderGroupSummary struct {
	ID           kernel.UUID
	ProviderID   kernel.UUID
	Status       string
	ServiceCount int
	TotalAmount  int64
}

// GetOrderSummaryQueryResponse represents the order tree as read models.
// Statuses are the stored derived values, not recomputed ones.
type GetOrderSummaryQueryResponse struct {
	ID       kernel.UUID
	PlacedBy kernel.UUID
	Status   string
	Groups   []OrderGroupSummary
}
