package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRefundableOrdersQueryHandler lists orders the refund action is valid
// for: delivered with payment captured.
type GetRefundableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRefundableOrdersQueryHandler creates a handler for refundable order
// queries.
func NewGetRefundableOrdersQueryHandler(db *gorm.DB) GetRefundableOrdersQueryHandler {
	return GetRefundableOrdersQueryHandler{db: db}
}

// Handle returns the owner's delivered, paid orders, newest first.
func (h GetRefundableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRefundableOrdersQuery,
) ([]GetRefundableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetRefundableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			created_at
		FROM orders
		WHERE owner_id = ? AND status = ? AND payment_status = ?
		ORDER BY created_at DESC
	`, query.OwnerID().Bytes(), int(order.StatusDelivered), int(order.PaymentPaid)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetRefundableOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
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

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
