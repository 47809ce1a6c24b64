package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrGetCancellableOrdersQueryIsNotConstructed = errors.New(
	"GetCancellableOrdersQuery must be created via NewGetCancellableOrdersQuery constructor",
)

// GetCancellableOrdersQuery lists a user's orders that may still be
// cancelled: those not yet in fulfillment (Pending or Confirmed).
type GetCancellableOrdersQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCancellableOrdersQuery creates the query for one order owner.
func NewGetCancellableOrdersQuery(ownerID kernel.UUID) (GetCancellableOrdersQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetCancellableOrdersQuery{}, err
	}
	return GetCancellableOrdersQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCancellableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCancellableOrdersQueryIsNotConstructed)
}

// OwnerID returns the user whose orders are listed.
func (q GetCancellableOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// GetCancellableOrdersQueryResponse is one cancellable order in the read model.
type GetCancellableOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	Status      order.Status
	CreatedAt   time.Time
}
