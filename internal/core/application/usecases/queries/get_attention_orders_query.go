package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetAttentionOrdersQueryIsNotConstructed = errors.New(
	"GetAttentionOrdersQuery must be created via NewGetAttentionOrdersQuery constructor",
)

// GetAttentionOrdersQuery finds orders stuck in a non-terminal status: still
// Pending, Confirmed, or Processing but untouched for longer than the given
// duration. Used by the periodic attention scan and the operator endpoint.
//
// Example:
//
//	query, err := NewGetAttentionOrdersQuery(48 * time.Hour)
//	if err != nil {
//	    return err
//	}
//	stuck, err := handler.Handle(ctx, query)
//	for _, o := range stuck {
//	    log.Warn("order needs attention", "order", o.OrderNumber, "status", o.Status)
//	}
type GetAttentionOrdersQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetAttentionOrdersQuery creates the query. The duration must be positive.
func NewGetAttentionOrdersQuery(olderThan time.Duration) (GetAttentionOrdersQuery, error) {
	if olderThan <= 0 {
		return GetAttentionOrdersQuery{}, errs.NewValueIsRequiredError("olderThan")
	}
	return GetAttentionOrdersQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAttentionOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAttentionOrdersQueryIsNotConstructed)
}

// OlderThan returns how long an order must have been untouched to qualify.
func (q GetAttentionOrdersQuery) OlderThan() time.Duration {
	return q.olderThan
}

// GetAttentionOrdersQueryResponse is one stuck order in the read model.
type GetAttentionOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	Status      order.Status
	UpdatedAt   time.Time
}
