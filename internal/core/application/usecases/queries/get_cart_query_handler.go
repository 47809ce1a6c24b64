package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler serves cart contents straight from the database.
// Lines come back newest-first, matching the order clients render them in.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart content queries.
// Requires a GORM database connection for query execution.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the query and returns the owner's cart lines with the
// total quantity. An owner with no lines gets an empty response, not an error.
func (h GetCartQueryHandler) Handle(
	ctx context.Context,
	query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{Lines: make([]CartLineResponse, 0)}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			added_at
		FROM cart_lines
		WHERE owner_kind = ? AND owner_ref = ?
		ORDER BY added_at DESC
	`, int(query.Owner().Kind()), query.Owner().Reference()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line CartLineResponse
		var productID uuid.UUID

		err = rows.Scan(
			&productID,
			&line.Quantity,
			&line.AddedAt,
		)
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		id, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		line.ProductID = id

		response.Lines = append(response.Lines, line)
		response.TotalQuantity += line.Quantity
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}
