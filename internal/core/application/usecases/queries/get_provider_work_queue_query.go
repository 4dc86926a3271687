package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetProviderWorkQueueQueryIsNotConstructed = errors.New(
	"GetProviderWorkQueueQuery must be created via NewGetProviderWorkQueueQuery constructor",
)

// GetProviderWorkQueueQuery retrieves a provider organization's open groups:
// everything not yet Rejected or Completed, with the number of services
// still awaiting a decision.
type GetProviderWorkQueueQuery struct {
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProviderWorkQueueQuery creates a query for the given provider.
func NewGetProviderWorkQueueQuery(providerID kernel.UUID) (GetProviderWorkQueueQuery, error) {
	if err := providerID.Validate(); err != nil {
		return GetProviderWorkQueueQuery{}, err
	}

	return GetProviderWorkQueueQuery{
		providerID: providerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProviderWorkQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetProviderWorkQueueQueryIsNotConstructed)
}

// ProviderID returns the identifier of the provider organization.
func (q GetProviderWorkQueueQuery) ProviderID() kernel.UUID {
	return q.providerID
}

// GetProviderWorkQueueQueryResponse is one open group on the provider's desk.
type GetProviderWorkQueueQueryResponse struct {
	GroupID         kernel.UUID
	OrderID         kernel.UUID
	Status          string
	PendingServices int
}
