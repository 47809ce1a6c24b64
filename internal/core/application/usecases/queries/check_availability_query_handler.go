package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// CheckAvailabilityQueryHandler answers availability checks from the
// inventory table without touching the aggregate.
type CheckAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewCheckAvailabilityQueryHandler creates a handler for availability checks.
func NewCheckAvailabilityQueryHandler(db *gorm.DB) CheckAvailabilityQueryHandler {
	return CheckAvailabilityQueryHandler{db: db}
}

// Handle executes the availability check. Unknown products fail with
// errs.ErrObjectNotFound.
func (h CheckAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAvailabilityQuery,
) (CheckAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckAvailabilityQueryResponse{}, err
	}

	var available int
	row := h.db.WithContext(ctx).Raw(`
		SELECT quantity_available
		FROM inventory_records
		WHERE product_id = ?
	`, query.ProductID().Bytes()).Row()

	if err := row.Scan(&available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CheckAvailabilityQueryResponse{},
				errs.NewObjectNotFoundError("product", query.ProductID().String())
		}
		return CheckAvailabilityQueryResponse{}, err
	}

	return CheckAvailabilityQueryResponse{
		ProductID:         query.ProductID(),
		Requested:         query.Quantity(),
		QuantityAvailable: available,
		IsAvailable:       available >= query.Quantity(),
	}, nil
}
