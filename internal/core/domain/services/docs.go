// Package services contains stateless domain services that coordinate
// multiple aggregates: the InventoryLedger, the only writer of stock
// counters, and the CartMerger, which owns the guest-to-user merge policy.
package services
