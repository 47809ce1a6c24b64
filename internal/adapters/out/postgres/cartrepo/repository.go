package cartrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart line. A concurrent insert of the same (owner, product)
// pair trips the unique index; that is surfaced as a version conflict so the
// caller retries and lands on the increment path instead.
func (r *GormCartRepository) Add(ctx context.Context, line *cart.Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := fromDomain(line)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return errs.NewVersionIsInvalidError("cart line", err)
		}
		return err
	}

	r.tracker.TrackAggregate(line.ID(), line)
	return nil
}

// Update saves quantity or owner changes to an existing line.
func (r *GormCartRepository) Update(ctx context.Context, line *cart.Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := fromDomain(line)
	result := r.db.WithContext(ctx).Model(&CartLineDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(line.ID(), line)
	return nil
}

// Get retrieves the line an owner holds for a product.
func (r *GormCartRepository) Get(
	ctx context.Context,
	owner kernel.Owner,
	productID kernel.UUID,
) (*cart.Line, error) {
	if err := errors.Join(owner.Validate(), productID.Validate()); err != nil {
		return nil, err
	}

	var dto CartLineDTO
	err := r.db.WithContext(ctx).First(&dto,
		"owner_kind = ? AND owner_ref = ? AND product_id = ?",
		int(owner.Kind()), owner.Reference(), productID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart line",
				fmt.Sprintf("%s/%s", owner, productID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOwner retrieves all lines for an owner, most recently added first.
func (r *GormCartRepository) ListByOwner(ctx context.Context, owner kernel.Owner) ([]*cart.Line, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartLineDTO
	err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_ref = ?", int(owner.Kind()), owner.Reference()).
		Order("added_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	lines := make([]*cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		line, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// Remove deletes the line an owner holds for a product.
func (r *GormCartRepository) Remove(ctx context.Context, owner kernel.Owner, productID kernel.UUID) error {
	if err := errors.Join(owner.Validate(), productID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_ref = ? AND product_id = ?",
			int(owner.Kind()), owner.Reference(), productID.Bytes()).
		Delete(&CartLineDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart line",
			fmt.Sprintf("%s/%s", owner, productID))
	}

	return nil
}

// Clear deletes every line for an owner. Clearing an empty cart is a no-op.
func (r *GormCartRepository) Clear(ctx context.Context, owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_ref = ?", int(owner.Kind()), owner.Reference()).
		Delete(&CartLineDTO{}).Error
}

// DeleteGuestLinesBefore deletes guest-owned lines added before the cutoff
// and reports how many were removed. User lines are never touched.
func (r *GormCartRepository) DeleteGuestLinesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("owner_kind = ? AND added_at < ?", int(kernel.OwnerKindGuest), cutoff).
		Delete(&CartLineDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
