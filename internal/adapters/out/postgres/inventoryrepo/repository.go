package inventoryrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock record with version zero.
func (r *GormInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ProductID(), record)
	return nil
}

// GetByProduct retrieves the stock record for one product.
func (r *GormInventoryRepository) GetByProduct(
	ctx context.Context,
	productID kernel.UUID,
) (*inventory.Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory record", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByProducts retrieves stock records for several products, preserving the
// requested order. Fails if any product has no record.
func (r *GormInventoryRepository) GetByProducts(
	ctx context.Context,
	productIDs []kernel.UUID,
) ([]*inventory.Record, error) {
	for _, productID := range productIDs {
		if err := productID.Validate(); err != nil {
			return nil, err
		}
	}

	raw := make([]uuid.UUID, 0, len(productIDs))
	for _, productID := range productIDs {
		raw = append(raw, productID.Bytes())
	}

	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "product_id IN ?", raw).Error; err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]RecordDTO, len(dtos))
	for _, dto := range dtos {
		byProduct[dto.ProductID] = dto
	}

	records := make([]*inventory.Record, 0, len(productIDs))
	for _, productID := range productIDs {
		dto, ok := byProduct[productID.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("inventory record", productID.String())
		}
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// UpdateCounters writes the record's counters conditionally on the version it
// was loaded with, bumping the version on success. A zero-row update means
// another writer got there first and surfaces as a version conflict.
func (r *GormInventoryRepository) UpdateCounters(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("product_id = ? AND version = ?", record.ProductID().Bytes(), record.Version()).
		Updates(map[string]any{
			"quantity_available": record.QuantityAvailable(),
			"quantity_reserved":  record.QuantityReserved(),
			"version":            record.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause(record.ProductID().String())
	}

	r.tracker.TrackAggregate(record.ProductID(), record)
	return nil
}

// ListBelowReorderLevel retrieves records at or below their reorder
// threshold, emptiest first.
func (r *GormInventoryRepository) ListBelowReorderLevel(ctx context.Context) ([]*inventory.Record, error) {
	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Where("quantity_available <= reorder_level").
		Order("quantity_available ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*inventory.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
