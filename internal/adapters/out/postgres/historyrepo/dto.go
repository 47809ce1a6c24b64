// Package historyrepo persists the append-only order status history. The
// autoincrement key gives entries a stable total order matching insertion,
// which within a transaction matches the actual transition sequence.
package historyrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryEntryDTO represents the database structure for history entries.
type HistoryEntryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	ChangedBy  string
	Reason     string
	CreatedAt  time.Time
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts a history entry to its database representation.
func fromDomain(entry *order.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: int(entry.FromStatus()),
		ToStatus:   int(entry.ToStatus()),
		ChangedBy:  entry.ChangedBy(),
		Reason:     entry.Reason(),
		CreatedAt:  entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a history entry.
func toDomain(dto HistoryEntryDTO) (*order.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreHistoryEntry(
		orderID,
		order.Status(dto.FromStatus),
		order.Status(dto.ToStatus),
		dto.ChangedBy,
		dto.Reason,
		dto.CreatedAt,
	)
}
