// Package queries contains the read side of the application: raw SQL read
// models served directly from the database, bypassing the aggregates. Each
// query object is constructor-guarded like the commands.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the full contents of one owner's cart.
//
// Example:
//
//	owner, _ := kernel.NewUserOwner(userID)
//	query, err := NewGetCartQuery(owner)
//	if err != nil {
//	    return err
//	}
//	cart, err := handler.Handle(ctx, query)
//	fmt.Printf("%d items in cart\n", cart.TotalQuantity)
type GetCartQuery struct {
	owner kernel.Owner

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the given cart owner.
func NewGetCartQuery(owner kernel.Owner) (GetCartQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{
		owner: owner,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// Owner returns the cart owner being queried.
func (q GetCartQuery) Owner() kernel.Owner {
	return q.owner
}

// GetCartQueryResponse is the cart read model: lines newest-first plus the
// total unit count across all lines.
type GetCartQueryResponse struct {
	Lines         []CartLineResponse
	TotalQuantity int
}

// CartLineResponse is one cart line in the read model.
type CartLineResponse struct {
	ProductID kernel.UUID
	Quantity  int
	AddedAt   time.Time
}
