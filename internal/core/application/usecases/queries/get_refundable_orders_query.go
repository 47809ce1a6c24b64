package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetRefundableOrdersQueryIsNotConstructed = errors.New(
	"GetRefundableOrdersQuery must be created via NewGetRefundableOrdersQuery constructor",
)

// GetRefundableOrdersQuery lists a user's orders eligible for a refund:
// delivered and paid.
type GetRefundableOrdersQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRefundableOrdersQuery creates the query for one order owner.
func NewGetRefundableOrdersQuery(ownerID kernel.UUID) (GetRefundableOrdersQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetRefundableOrdersQuery{}, err
	}
	return GetRefundableOrdersQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRefundableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRefundableOrdersQueryIsNotConstructed)
}

// OwnerID returns the user whose orders are listed.
func (q GetRefundableOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// GetRefundableOrdersQueryResponse is one refundable order in the read model.
type GetRefundableOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	CreatedAt   time.Time
}
