// Package commands contains the write-side business operations: cart
// mutations, the guest-to-user cart merge, order creation at checkout, and
// order status transitions. Every command follows the same pattern:
// constructor-guarded command object, handler with a unit-of-work factory,
// Begin / deferred Rollback / Commit around all persistence.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces scope each handler to exactly the repositories it
// needs, while every concrete unit of work can satisfy all of them.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides access to the history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// CartUoW manages transactions for cart-only operations
	// (add, remove, clear, guest purge).
	CartUoW interface {
		TxManager
		CartRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// MergeUoW manages transactions for the cart merge, which reads
	// inventory to cap merged quantities.
	MergeUoW interface {
		TxManager
		CartRepoFactory
		InventoryRepoFactory
	}

	// MergeUoWFactory creates new merge unit of work instances.
	MergeUoWFactory interface {
		Create() MergeUoW
	}

	// CheckoutUoW manages the checkout transaction, which spans the cart
	// snapshot, the inventory reservation, the new order, and its first
	// history entry.
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		InventoryRepoFactory
		OrderRepoFactory
		HistoryRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW manages transactions for status transitions, which touch the
	// order, its inventory reservation, and the history log.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		HistoryRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
