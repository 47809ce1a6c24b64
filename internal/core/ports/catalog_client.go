package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// ProductSnapshot carries the catalog data frozen into an order line at
// checkout: the SKU and the price at that moment.
type ProductSnapshot struct {
	SKU   string
	Price kernel.Money
}

// CatalogClient is the boundary to the external product catalog. The core
// calls it only at order creation to freeze line prices; it never rereads
// prices afterwards.
type CatalogClient interface {
	// GetProduct retrieves the current SKU and price for a product.
	// Returns errs.ObjectNotFoundError for unknown products.
	GetProduct(ctx context.Context, productID kernel.UUID) (ProductSnapshot, error)
}
