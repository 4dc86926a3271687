package services

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/ordergroup"
)

// The status lattice derives each parent's status from the multiset of its
// children's statuses. Each level is an ordered rule table: the first rule
// whose predicate holds decides the result. Predicates only inspect counts,
// so the derivation is deterministic and independent of input ordering.

// statusTally summarizes a multiset of group/service statuses.
// Only counts matter; the original ordering is discarded.
type statusTally struct {
	total      int
	pending    int
	accepted   int
	rejected   int
	inProgress int
	completed  int
}

func tally(statuses []ordergroup.Status) statusTally {
	var t statusTally
	t.total = len(statuses)
	for _, s := range statuses {
		switch s {
		case ordergroup.Pending:
			t.pending++
		case ordergroup.Accepted:
			t.accepted++
		case ordergroup.Rejected:
			t.rejected++
		case ordergroup.InProgress:
			t.inProgress++
		case ordergroup.Completed:
			t.completed++
		case ordergroup.Unknown:
			// Unknown never occurs in persisted data; counted as total only.
		}
	}
	return t
}

// groupRule is one row of the table deriving a group status from its
// live services.
type groupRule struct {
	name    string
	applies func(statusTally) bool
	result  ordergroup.Status
}

// groupRules is evaluated top to bottom; the first match wins. The order
// encodes precedence: rejection is terminal and overrides every other
// sibling status, completion outranks progress, and partial acceptance
// already counts as accepted.
var groupRules = []groupRule{
	{
		name:    "empty set",
		applies: func(t statusTally) bool { return t.total == 0 },
		result:  ordergroup.Pending,
	},
	{
		name:    "any rejected",
		applies: func(t statusTally) bool { return t.rejected > 0 },
		result:  ordergroup.Rejected,
	},
	{
		name:    "all completed",
		applies: func(t statusTally) bool { return t.completed == t.total },
		result:  ordergroup.Completed,
	},
	{
		name:    "any in progress",
		applies: func(t statusTally) bool { return t.inProgress > 0 },
		result:  ordergroup.InProgress,
	},
	{
		name:    "all accepted",
		applies: func(t statusTally) bool { return t.accepted == t.total },
		result:  ordergroup.Accepted,
	},
	{
		name:    "partially accepted",
		applies: func(t statusTally) bool { return t.accepted > 0 },
		result:  ordergroup.Accepted,
	},
	{
		name:    "all pending",
		applies: func(t statusTally) bool { return true },
		result:  ordergroup.Pending,
	},
}

// orderRule is one row of the table deriving an order status from its groups.
type orderRule struct {
	name    string
	applies func(statusTally) bool
	result  order.Status
}

// orderRules is evaluated top to bottom; the first match wins. All-accepted
// and all-completed both yield Confirmed: the root level does not distinguish
// accepted work from finished work. A single rejected group cancels the
// whole order even when sibling groups already completed.
var orderRules = []orderRule{
	{
		name:    "empty set",
		applies: func(t statusTally) bool { return t.total == 0 },
		result:  order.Draft,
	},
	{
		name:    "all completed",
		applies: func(t statusTally) bool { return t.completed == t.total },
		result:  order.Confirmed,
	},
	{
		name:    "all accepted",
		applies: func(t statusTally) bool { return t.accepted == t.total },
		result:  order.Confirmed,
	},
	{
		name:    "any rejected",
		applies: func(t statusTally) bool { return t.rejected > 0 },
		result:  order.Cancelled,
	},
	{
		name:    "partially confirmed",
		applies: func(t statusTally) bool { return t.accepted > 0 || t.completed > 0 },
		result:  order.PartiallyConfirmed,
	},
	{
		name:    "awaiting confirmation",
		applies: func(t statusTally) bool { return true },
		result:  order.PendingAgencyConfirmation,
	},
}

// GroupStatusFor derives an order group's status from the statuses of its
// live services. Pure and total: every input multiset maps to exactly one
// valid status.
func GroupStatusFor(serviceStatuses []ordergroup.Status) ordergroup.Status {
	status, _ := ExplainGroupStatus(serviceStatuses)
	return status
}

// ExplainGroupStatus derives the group status and reports the name of the
// rule that decided it. Used by tests and diagnostic logging to make rule
// precedence observable.
func ExplainGroupStatus(serviceStatuses []ordergroup.Status) (ordergroup.Status, string) {
	t := tally(serviceStatuses)
	for _, r := range groupRules {
		if r.applies(t) {
			return r.result, r.name
		}
	}
	// The last rule always applies; unreachable.
	return ordergroup.Pending, "all pending"
}

// OrderStatusFor derives an order's status from the statuses of its groups.
// Pure and total, like GroupStatusFor.
func OrderStatusFor(groupStatuses []ordergroup.Status) order.Status {
	status, _ := ExplainOrderStatus(groupStatuses)
	return status
}

// ExplainOrderStatus derives the order status and reports the name of the
// rule that decided it.
func ExplainOrderStatus(groupStatuses []ordergroup.Status) (order.Status, string) {
	t := tally(groupStatuses)
	for _, r := range orderRules {
		if r.applies(t) {
			return r.result, r.name
		}
	}
	// The last rule always applies; unreachable.
	return order.PendingAgencyConfirmation, "awaiting confirmation"
}
