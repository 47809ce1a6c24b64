// Package cartrepo persists cart lines. The unique (owner, product) index is
// the storage-level guarantee behind add-or-increment: a concurrent insert of
// the same pair fails the constraint and the caller falls back to the
// increment path.
package cartrepo

import (
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartLineDTO represents the database structure for persisting cart lines.
type CartLineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerKind int       `gorm:"uniqueIndex:idx_cart_owner_product"`
	OwnerRef  string    `gorm:"uniqueIndex:idx_cart_owner_product"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_owner_product"`
	Quantity  int
	AddedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

// fromDomain converts a cart line entity to its database representation.
func fromDomain(line *cart.Line) CartLineDTO {
	return CartLineDTO{
		ID:        line.ID().Bytes(),
		OwnerKind: int(line.Owner().Kind()),
		OwnerRef:  line.Owner().Reference(),
		ProductID: line.ProductID().Bytes(),
		Quantity:  line.Quantity(),
		AddedAt:   line.AddedAt(),
	}
}

// toDomain converts a database DTO to a cart line entity, reconstructing the
// owner from its stored kind and reference.
func toDomain(dto CartLineDTO) (*cart.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	owner, err := restoreOwner(dto.OwnerKind, dto.OwnerRef)
	if err != nil {
		return nil, err
	}

	return cart.RestoreLine(id, owner, productID, dto.Quantity, dto.AddedAt)
}

func restoreOwner(kind int, ref string) (kernel.Owner, error) {
	if kernel.OwnerKind(kind) == kernel.OwnerKindUser {
		userID, err := kernel.UUIDFromString(ref)
		if err != nil {
			return kernel.Owner{}, err
		}
		return kernel.NewUserOwner(userID)
	}
	return kernel.NewGuestOwner(ref)
}
