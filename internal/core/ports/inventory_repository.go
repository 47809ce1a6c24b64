package ports

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for stock records.
// Counter updates are conditional on the record version loaded with it, so
// concurrent writers to the same product cannot lose updates.
type InventoryRepository interface {
	// Add persists a new stock record for a product.
	Add(ctx context.Context, record *inventory.Record) error

	// GetByProduct retrieves the stock record for one product.
	// Returns errs.ObjectNotFoundError when the product has no record.
	GetByProduct(ctx context.Context, productID kernel.UUID) (*inventory.Record, error)

	// GetByProducts retrieves stock records for several products in the
	// given order, failing with errs.ObjectNotFoundError if any is missing.
	GetByProducts(ctx context.Context, productIDs []kernel.UUID) ([]*inventory.Record, error)

	// UpdateCounters writes the record's counters conditionally on the
	// version it was loaded with, bumping the version on success. Returns
	// errs.ErrVersionIsInvalid (wrapped) when another writer got there
	// first; the caller is expected to reload and retry.
	UpdateCounters(ctx context.Context, record *inventory.Record) error

	// ListBelowReorderLevel retrieves records whose available quantity has
	// dropped to or below their reorder threshold.
	ListBelowReorderLevel(ctx context.Context) ([]*inventory.Record, error)
}
