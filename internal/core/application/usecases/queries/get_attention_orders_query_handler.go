package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAttentionOrdersQueryHandler finds orders that stopped moving through
// the lifecycle. Terminal and shipped orders are excluded: Shipped is
// carrier territory and Delivered/Cancelled/Refunded need no action.
type GetAttentionOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAttentionOrdersQueryHandler creates a handler for attention queries.
func NewGetAttentionOrdersQueryHandler(db *gorm.DB) GetAttentionOrdersQueryHandler {
	return GetAttentionOrdersQueryHandler{db: db}
}

// Handle returns orders in Pending, Confirmed, or Processing whose last
// update is older than the query's cutoff, stalest first.
func (h GetAttentionOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAttentionOrdersQuery,
) ([]GetAttentionOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.OlderThan())
	orders := make([]GetAttentionOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			updated_at
		FROM orders
		WHERE status IN (?, ?, ?) AND updated_at < ?
		ORDER BY updated_at ASC
	`, int(order.StatusPending), int(order.StatusConfirmed), int(order.StatusProcessing), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAttentionOrdersQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&status,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
