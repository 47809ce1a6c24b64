package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart lines. The store
// enforces at most one line per (owner, product) pair through a unique index;
// Add returns an error when that constraint is violated.
type CartRepository interface {
	// Add persists a new cart line.
	Add(ctx context.Context, line *cart.Line) error

	// Update persists changes (quantity or owner) to an existing line.
	Update(ctx context.Context, line *cart.Line) error

	// Get retrieves the line an owner holds for a product.
	// Returns errs.ObjectNotFoundError when no such line exists.
	Get(ctx context.Context, owner kernel.Owner, productID kernel.UUID) (*cart.Line, error)

	// ListByOwner retrieves all lines for an owner ordered by insertion
	// time, most recent first.
	ListByOwner(ctx context.Context, owner kernel.Owner) ([]*cart.Line, error)

	// Remove deletes the line an owner holds for a product.
	// Returns errs.ObjectNotFoundError when no such line exists.
	Remove(ctx context.Context, owner kernel.Owner, productID kernel.UUID) error

	// Clear deletes every line for an owner. Clearing an empty cart is a no-op.
	Clear(ctx context.Context, owner kernel.Owner) error

	// DeleteGuestLinesBefore deletes guest-owned lines added before the
	// cutoff and reports how many were removed. Best-effort maintenance.
	DeleteGuestLinesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
