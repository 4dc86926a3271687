package notifications

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// Dispatcher turns committed status transitions into published events.
//
// It runs strictly after the transaction that produced the transitions, so a
// rolled-back change can never be announced. Publishing is fire-and-forget:
// a transport failure is logged and dropped, it never fails the command that
// triggered it and it is never retried.
//
// Each event carries exactly one actor, resolved through a fallback chain:
// the acting user of the current request when one is present, otherwise the
// user who placed the root order, otherwise the event is skipped entirely.
type Dispatcher struct {
	publisher ports.EventPublisher
	actors    ports.ActorProvider
	logger    *slog.Logger
	clock     func() time.Time
}

// NewDispatcher creates a Dispatcher over the given transport.
func NewDispatcher(publisher ports.EventPublisher, actors ports.ActorProvider, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		actors:    actors,
		logger:    logger,
		clock:     time.Now,
	}
}

// Dispatch publishes one event per transition. Safe to call with an empty
// slice: commands always call it after commit, changed or not.
func (d *Dispatcher) Dispatch(ctx context.Context, transitions []services.StatusTransition) {
	now := d.clock()

	for _, transition := range transitions {
		actorID, ok := d.resolveActor(ctx, transition)
		if !ok {
			d.logger.WarnContext(ctx, "status event skipped, no actor resolvable",
				"kind", string(transition.Kind),
				"node_id", transition.NodeID.String(),
			)
			continue
		}

		event := ports.StatusChangedEvent{
			Kind:       string(transition.Kind),
			NodeID:     transition.NodeID.String(),
			OrderID:    transition.OrderID.String(),
			From:       transition.From,
			To:         transition.To,
			ActorID:    actorID.String(),
			OccurredAt: now,
		}

		channels := audienceChannels(transition)
		if err := d.publisher.Publish(ctx, channels, event); err != nil {
			d.logger.ErrorContext(ctx, "status event publish failed",
				"kind", event.Kind,
				"node_id", event.NodeID,
				"channels", channels,
				"error", err,
			)
		}
	}
}

func (d *Dispatcher) resolveActor(ctx context.Context, transition services.StatusTransition) (kernel.UUID, bool) {
	if actorID, ok := d.actors.CurrentActor(ctx); ok {
		return actorID, true
	}
	if transition.PlacedBy.Validate() == nil {
		return transition.PlacedBy, true
	}
	return kernel.UUID{}, false
}

// audienceChannels returns the de-duplicated, sorted channel set for a
// transition. Group changes go to the provider organization and to watchers
// of the group itself; order changes go to watchers of the order and to the
// placing user's feed.
func audienceChannels(transition services.StatusTransition) []string {
	var channels []string

	switch transition.Kind {
	case services.NodeKindOrderGroup:
		channels = []string{
			"org:" + transition.ProviderID.String(),
			"order-group:" + transition.NodeID.String(),
		}
	case services.NodeKindOrder:
		channels = []string{
			"order:" + transition.NodeID.String(),
			"orders:" + transition.PlacedBy.String(),
		}
	}

	seen := make(map[string]struct{}, len(channels))
	unique := channels[:0]
	for _, channel := range channels {
		if _, ok := seen[channel]; ok {
			continue
		}
		seen[channel] = struct{}{}
		unique = append(unique, channel)
	}
	sort.Strings(unique)

	return unique
}
