package services

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// NodeKind identifies which level of the fulfillment tree a transition
// happened on.
type NodeKind string

const (
	// NodeKindOrderGroup marks a transition of an order group.
	NodeKindOrderGroup NodeKind = "order_group"

	// NodeKindOrder marks a transition of an order.
	NodeKindOrder NodeKind = "order"
)

// StatusTransition records one real status change produced by an aggregation
// run: the node that changed, where it sits in the tree, and the old and new
// statuses. Transitions are collected inside the transaction and handed to
// the notification dispatcher only after a successful commit, so an aborted
// transaction never leaks an event.
type StatusTransition struct {
	// Kind is the tree level of the node that changed.
	Kind NodeKind

	// NodeID identifies the changed node.
	NodeID kernel.UUID

	// OrderID identifies the root order of the node's tree. Equal to
	// NodeID for order transitions.
	OrderID kernel.UUID

	// ProviderID identifies the provider organization of a group
	// transition. Zero for order transitions.
	ProviderID kernel.UUID

	// PlacedBy identifies the actor who placed the root order. Used as
	// the fallback acting user for notification attribution.
	PlacedBy kernel.UUID

	// From and To are the statuses before and after the recomputation.
	From string
	To   string
}
