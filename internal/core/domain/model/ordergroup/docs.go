// Package ordergroup provides the mid and leaf levels of the fulfillment tree.
//
// The package includes:
//   - OrderGroup: The per-provider aggregate whose status is derived from its services
//   - Service: The line-item entity, the only node with an externally set status
//   - Status: The enum shared by groups and services
//   - Price: The immutable price snapshot carried by each service
//
// Key business rules:
//   - A group's status is never set by external workflows; it is recomputed
//     from the live (non-deleted) services, except for explicit back-office
//     overrides which still cascade upward
//   - A single rejected service forces the whole group to Rejected
//   - Soft-deleted services do not participate in aggregation; deleting or
//     restoring one is an aggregation trigger in itself
package ordergroup
