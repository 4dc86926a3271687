// Package services provides the status lattice of the fulfillment tree:
// pure functions deriving each parent's status from the multiset of its
// children's statuses.
//
// The derivation rules are explicit ordered rule tables, one per tree level,
// evaluated first-match-wins over status counts. Keeping the rules in a
// table makes precedence directly testable instead of being implied by
// if-statement ordering.
//
// The package also defines StatusTransition, the record of one real status
// change that the aggregation engine hands to the notification dispatcher.
//
// Nothing in this package performs I/O; the transactional read-modify-write
// around these functions lives in the application layer.
package services
