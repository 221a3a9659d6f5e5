package discountrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/discount"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDiscountRepository implements ports.DiscountRepository using GORM.
type GormDiscountRepository struct {
	db *gorm.DB
}

func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

func (r *GormDiscountRepository) Add(ctx context.Context, aggregate *discount.Discount) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDiscountRepository) Get(ctx context.Context, id kernel.UUID) (*discount.Discount, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DiscountDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("discount", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// IncrementTotalUse runs UPDATE discounts SET total_use = total_use + 1 WHERE id = $1.
func (r *GormDiscountRepository) IncrementTotalUse(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DiscountDTO{}).
		Where("id = ?", id.Google()).
		UpdateColumn("total_use", gorm.Expr("total_use + ?", 1))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("discount", id.String())
	}
	return nil
}

// ListValid returns discounts whose expire_date is not before now. No ORDER BY:
// callers get the table's natural order.
func (r *GormDiscountRepository) ListValid(ctx context.Context, now time.Time) ([]*discount.Discount, error) {
	var dtos []DiscountDTO
	if err := r.db.WithContext(ctx).Where("expire_date >= ?", now).Find(&dtos).Error; err != nil {
		return nil, err
	}

	discounts := make([]*discount.Discount, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, nil
}
