package deliverymanrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/deliveryman"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliverymanRepository implements ports.DeliverymanRepository using GORM.
type GormDeliverymanRepository struct {
	db *gorm.DB
}

func NewGormDeliverymanRepository(db *gorm.DB) *GormDeliverymanRepository {
	return &GormDeliverymanRepository{db: db}
}

func (r *GormDeliverymanRepository) Add(ctx context.Context, aggregate *deliveryman.Deliveryman) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDeliverymanRepository) Get(ctx context.Context, id kernel.UUID) (*deliveryman.Deliveryman, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliverymanDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryman", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CreditBucket issues a single UPDATE:
//
//	UPDATE deliverymen
//	SET category6_quantity = COALESCE(category6_quantity, 0) + 1,
//	    category6_value    = COALESCE(category6_value, 0) + 6
//	WHERE id = $1
//
// Postgres serializes concurrent updates of the row, so no credit is lost.
func (r *GormDeliverymanRepository) CreditBucket(
	ctx context.Context,
	id kernel.UUID,
	inc deliveryman.BucketIncrement,
) error {
	if err := errors.Join(id.Validate(), inc.Validate()); err != nil {
		return err
	}

	qty, val := quantityColumn(inc.Bucket), valueColumn(inc.Bucket)
	result := r.db.WithContext(ctx).
		Model(&DeliverymanDTO{}).
		Where("id = ?", id.Google()).
		Updates(map[string]any{
			qty: gorm.Expr("COALESCE("+qty+", 0) + ?", inc.Quantity),
			val: gorm.Expr("COALESCE("+val+", 0) + ?", inc.Value),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryman", id.String())
	}
	return nil
}

// ResetWeeklyViews zeroes number_of_views_per_week on every row.
func (r *GormDeliverymanRepository) ResetWeeklyViews(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&DeliverymanDTO{}).
		Update("number_of_views_per_week", 0)
	return result.RowsAffected, result.Error
}
