// Package order contains the order aggregate and its satellite types: the
// immutable order Line, the Status and PaymentStatus state machines, and the
// append-only HistoryEntry recording every transition.
//
// An order is created from a cart snapshot at checkout and never deleted;
// its lifecycle ends in one of the terminal statuses (Delivered, Cancelled,
// Refunded). Inventory side effects of transitions are coordinated by the
// application layer through the InventoryLedger.
package order
