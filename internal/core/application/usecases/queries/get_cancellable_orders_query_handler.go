package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCancellableOrdersQueryHandler lists orders the cancel action is valid
// for, newest first.
type GetCancellableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCancellableOrdersQueryHandler creates a handler for cancellable
// order queries.
func NewGetCancellableOrdersQueryHandler(db *gorm.DB) GetCancellableOrdersQueryHandler {
	return GetCancellableOrdersQueryHandler{db: db}
}

// Handle returns the owner's orders in Pending or Confirmed status.
func (h GetCancellableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCancellableOrdersQuery,
) ([]GetCancellableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetCancellableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			created_at
		FROM orders
		WHERE owner_id = ? AND status IN (?, ?)
		ORDER BY created_at DESC
	`, query.OwnerID().Bytes(), int(order.StatusPending), int(order.StatusConfirmed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCancellableOrdersQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&status,
			&resp.CreatedAt,
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
