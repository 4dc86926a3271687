package notifications

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

type actorContextKey struct{}

// WithActor returns a context carrying the acting user. Inbound adapters
// attach the actor once per request; everything below reads it through an
// ActorProvider instead of touching the context directly.
func WithActor(ctx context.Context, actorID kernel.UUID) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actorID)
}

// ContextActorProvider resolves the actor from the request context.
type ContextActorProvider struct{}

// NewContextActorProvider creates a ContextActorProvider.
func NewContextActorProvider() ContextActorProvider {
	return ContextActorProvider{}
}

// CurrentActor returns the actor attached by WithActor, if any.
func (ContextActorProvider) CurrentActor(ctx context.Context) (kernel.UUID, bool) {
	actorID, ok := ctx.Value(actorContextKey{}).(kernel.UUID)
	if !ok || actorID.Validate() != nil {
		return kernel.UUID{}, false
	}
	return actorID, true
}
