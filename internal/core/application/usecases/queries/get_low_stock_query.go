package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetLowStockQueryIsNotConstructed = errors.New(
	"GetLowStockQuery must be created via NewGetLowStockQuery constructor",
)

// GetLowStockQuery lists products whose available quantity has dropped to or
// below their reorder level.
type GetLowStockQuery struct {
	guard guard.ConstructorGuard
}

// NewGetLowStockQuery creates a parameterless low-stock query.
func NewGetLowStockQuery() GetLowStockQuery {
	return GetLowStockQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetLowStockQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockQueryIsNotConstructed)
}

// GetLowStockQueryResponse is one product needing restock.
type GetLowStockQueryResponse struct {
	ProductID         kernel.UUID
	QuantityAvailable int
	ReorderLevel      int
}
