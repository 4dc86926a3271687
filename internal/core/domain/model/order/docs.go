// Package order provides the root aggregate of the fulfillment tree.
//
// The package includes:
//   - Order: The aggregate root holding identity, the placing actor, and a derived status
//   - Status: The enum of derived order states with validation and string conversion
//
// Key business rules:
//   - An order's status is never set by hand after creation; it is always
//     recomputed from the statuses of its order groups
//   - A new order starts in Draft, which is also what the derivation rules
//     yield for an empty group set
//   - A single rejected group cancels the whole order, regardless of the
//     other groups' statuses
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
