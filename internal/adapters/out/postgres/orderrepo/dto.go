// Package orderrepo persists order aggregates across two tables: the order
// header and its frozen lines. Lines are written once at creation and never
// updated afterwards.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order headers.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber   string    `gorm:"uniqueIndex"`
	OwnerID       uuid.UUID `gorm:"type:uuid;index"`
	Status        int       `gorm:"index"`
	PaymentStatus int
	Lines         []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for order headers.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one frozen order line. The surrogate key preserves
// checkout ordering when lines are read back.
type OrderLineDTO struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	ProductID     uuid.UUID `gorm:"type:uuid"`
	SKU           string
	Quantity      int
	PriceAmount   int64
	PriceCurrency string
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its database representation,
// lines included.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:       aggregate.ID().Bytes(),
			ProductID:     line.ProductID().Bytes(),
			SKU:           line.SKU(),
			Quantity:      line.Quantity(),
			PriceAmount:   line.UnitPrice().Amount(),
			PriceCurrency: line.UnitPrice().Currency(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		OwnerID:       aggregate.OwnerID().Bytes(),
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		Lines:         lines,
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		price, lineErr := kernel.NewMoney(lineDTO.PriceAmount, lineDTO.PriceCurrency)
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(productID, lineDTO.SKU, lineDTO.Quantity, price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		ownerID,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		lines,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
