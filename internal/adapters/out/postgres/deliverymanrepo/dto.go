// Package deliverymanrepo persists deliverymen and applies bucket credits as
// atomic SQL increments.
package deliverymanrepo

import (
	"orderflow/internal/core/domain/model/deliveryman"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliverymanDTO is the deliverymen row. Each bucket is a pair of nullable
// columns; NULL means the bucket was never credited.
type DeliverymanDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"type:varchar(255);not null"`
	Phone                string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Category             BucketDTO `gorm:"embedded;embeddedPrefix:category_"`
	Category6            BucketDTO `gorm:"embedded;embeddedPrefix:category6_"`
	Category10           BucketDTO `gorm:"embedded;embeddedPrefix:category10_"`
	NumberOfViewsPerWeek int       `gorm:"not null;default:0"`
}

func (DeliverymanDTO) TableName() string {
	return "deliverymen"
}

// BucketDTO maps to <prefix>quantity and <prefix>value.
type BucketDTO struct {
	Quantity *int
	Value    decimal.NullDecimal `gorm:"type:numeric"`
}

// quantityColumn and valueColumn name the columns of one bucket.
func quantityColumn(name deliveryman.BucketName) string { return string(name) + "_quantity" }
func valueColumn(name deliveryman.BucketName) string    { return string(name) + "_value" }

func fromDomain(d *deliveryman.Deliveryman) DeliverymanDTO {
	return DeliverymanDTO{
		ID:                   d.ID().Google(),
		Name:                 d.Name(),
		Phone:                d.Phone(),
		Category:             bucketFromDomain(d.Bucket(deliveryman.Category)),
		Category6:            bucketFromDomain(d.Bucket(deliveryman.Category6)),
		Category10:           bucketFromDomain(d.Bucket(deliveryman.Category10)),
		NumberOfViewsPerWeek: d.NumberOfViewsPerWeek(),
	}
}

func bucketFromDomain(b *deliveryman.Bucket) BucketDTO {
	if b == nil {
		return BucketDTO{}
	}
	q := b.Quantity()
	return BucketDTO{Quantity: &q, Value: decimal.NewNullDecimal(b.Value())}
}

func toDomain(dto DeliverymanDTO) (*deliveryman.Deliveryman, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	category, err := bucketToDomain(dto.Category)
	if err != nil {
		return nil, err
	}
	category6, err := bucketToDomain(dto.Category6)
	if err != nil {
		return nil, err
	}
	category10, err := bucketToDomain(dto.Category10)
	if err != nil {
		return nil, err
	}

	return deliveryman.RestoreDeliveryman(id, dto.Name, dto.Phone, category, category6, category10, dto.NumberOfViewsPerWeek)
}

func bucketToDomain(dto BucketDTO) (*deliveryman.Bucket, error) {
	if dto.Quantity == nil && !dto.Value.Valid {
		return nil, nil
	}

	quantity := 0
	if dto.Quantity != nil {
		quantity = *dto.Quantity
	}
	value := decimal.Zero
	if dto.Value.Valid {
		value = dto.Value.Decimal
	}

	b, err := deliveryman.NewBucket(quantity, value)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
