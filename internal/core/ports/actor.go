package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// ActorProvider resolves the actor performing the current request, if any.
// The actor is carried explicitly on the context by the inbound adapter;
// there is no ambient authentication state. When no actor is present the
// notification dispatcher falls back to the actor who placed the root order.
type ActorProvider interface {
	CurrentActor(ctx context.Context) (kernel.UUID, bool)
}
