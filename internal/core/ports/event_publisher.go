package ports

import (
	"context"
	"time"
)

// StatusChangedEvent is the immutable payload published when a node's status
// actually changed. One event is produced per (node, transition); an
// unchanged recomputation produces nothing.
type StatusChangedEvent struct {
	// Kind is the tree level of the node ("order_group" or "order").
	Kind string `json:"kind"`

	// NodeID identifies the changed node.
	NodeID string `json:"node_id"`

	// OrderID identifies the root order of the node's tree.
	OrderID string `json:"order_id"`

	// From and To are the statuses before and after the change.
	From string `json:"from"`
	To   string `json:"to"`

	// ActorID identifies the resolved acting user. Never empty: when no
	// actor can be resolved, the event is not published at all.
	ActorID string `json:"actor_id"`

	// OccurredAt is the time the change was observed.
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers a status-changed event to a set of logical
// audience channels. The engine's contract with the transport is minimal:
// it calls Publish at most once per real transition, with a de-duplicated
// channel set, and never retries on failure.
type EventPublisher interface {
	Publish(ctx context.Context, channels []string, event StatusChangedEvent) error
}
