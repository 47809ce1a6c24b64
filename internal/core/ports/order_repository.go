package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted; Update only ever changes status, payment state,
// and updatedAt, since lines are frozen at creation.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and payment changes to an existing order,
	// conditionally on the status the aggregate was loaded with. Returns
	// errs.ErrVersionIsInvalid (wrapped) when a concurrent transition got
	// there first; the caller is expected to reload and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its lines by ID.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
