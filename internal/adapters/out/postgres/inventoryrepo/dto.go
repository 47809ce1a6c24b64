// Package inventoryrepo persists stock records. The version column carries
// the optimistic-lock token: counter updates are conditional on the version
// the record was loaded with, so two transactions racing over the same
// product cannot both win.
package inventoryrepo

import (
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting stock records.
type RecordDTO struct {
	ProductID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuantityAvailable int
	QuantityReserved  int
	ReorderLevel      int
	Version           int64
}

// TableName specifies the database table name for stock records.
func (RecordDTO) TableName() string {
	return "inventory_records"
}

// fromDomain converts a stock record aggregate to its database representation.
func fromDomain(record *inventory.Record) RecordDTO {
	return RecordDTO{
		ProductID:         record.ProductID().Bytes(),
		QuantityAvailable: record.QuantityAvailable(),
		QuantityReserved:  record.QuantityReserved(),
		ReorderLevel:      record.ReorderLevel(),
		Version:           record.Version(),
	}
}

// toDomain converts a database DTO to a stock record aggregate.
func toDomain(dto RecordDTO) (*inventory.Record, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreRecord(
		productID,
		dto.QuantityAvailable,
		dto.QuantityReserved,
		dto.ReorderLevel,
		dto.Version,
	)
}
