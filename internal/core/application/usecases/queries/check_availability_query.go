package queries

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCheckAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAvailabilityQuery must be created via NewCheckAvailabilityQuery constructor",
)

// CheckAvailabilityQuery asks whether a quantity of a product can currently
// be reserved. It is a point-in-time snapshot: a positive answer does not
// hold stock, only a reservation does.
type CheckAvailabilityQuery struct {
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewCheckAvailabilityQuery creates the query. The quantity must be positive.
func NewCheckAvailabilityQuery(productID kernel.UUID, quantity int) (CheckAvailabilityQuery, error) {
	if err := productID.Validate(); err != nil {
		return CheckAvailabilityQuery{}, err
	}
	if quantity < 1 {
		return CheckAvailabilityQuery{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return CheckAvailabilityQuery{
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAvailabilityQueryIsNotConstructed)
}

// ProductID returns the product being checked.
func (q CheckAvailabilityQuery) ProductID() kernel.UUID {
	return q.productID
}

// Quantity returns the quantity being checked.
func (q CheckAvailabilityQuery) Quantity() int {
	return q.quantity
}

// CheckAvailabilityQueryResponse reports the availability snapshot.
type CheckAvailabilityQueryResponse struct {
	ProductID         kernel.UUID
	Requested         int
	QuantityAvailable int
	IsAvailable       bool
}
