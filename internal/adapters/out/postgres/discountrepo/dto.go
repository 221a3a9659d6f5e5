// Package discountrepo persists discount codes and their usage counter.
package discountrepo

import (
	"time"

	"orderflow/internal/core/domain/model/discount"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountDTO is the discounts row.
type DiscountDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(255);not null"`
	ExpireDate time.Time       `gorm:"not null;index"`
	Value      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Type       string          `gorm:"type:varchar(16);not null"`
	Partner    string          `gorm:"type:varchar(255)"`
	TotalUse   int             `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

func (DiscountDTO) TableName() string {
	return "discounts"
}

func fromDomain(d *discount.Discount) DiscountDTO {
	return DiscountDTO{
		ID:         d.ID().Google(),
		Name:       d.Name(),
		ExpireDate: d.ExpireDate(),
		Value:      d.Value(),
		Type:       string(d.Type()),
		Partner:    d.Partner(),
		TotalUse:   d.TotalUse(),
	}
}

func toDomain(dto DiscountDTO) (*discount.Discount, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	kind, err := discount.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	return discount.RestoreDiscount(id, dto.Name, dto.ExpireDate, dto.Value, kind, dto.Partner, dto.TotalUse)
}
