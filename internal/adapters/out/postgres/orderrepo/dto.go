// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders row. The customer snapshot and line items are jsonb
// columns so the order keeps exactly what was sold, independent of later
// customer or product edits.
type OrderDTO struct {
	ID            uuid.UUID                        `gorm:"type:uuid;primaryKey"`
	Customer      datatypes.JSONType[CustomerDTO]  `gorm:"type:jsonb;not null"`
	LineItems     datatypes.JSONSlice[LineItemDTO] `gorm:"type:jsonb;not null"`
	Price         decimal.Decimal                  `gorm:"type:numeric(12,2);not null"`
	DiscountID    *uuid.UUID                       `gorm:"type:uuid;index"`
	DeliverymanID *uuid.UUID                       `gorm:"type:uuid;index"`
	Status        string                           `gorm:"type:varchar(16);not null;index"`
	CreatedAt     time.Time                        `gorm:"not null"`
	FinishedAt    *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is the jsonb customer snapshot.
type CustomerDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	DeliveryTax decimal.Decimal `json:"deliveryTax"`
}

// LineItemDTO is one element of the jsonb line item list.
type LineItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func fromDomain(o *order.Order) OrderDTO {
	c := o.Customer()
	items := make([]LineItemDTO, 0, len(o.LineItems()))
	for _, item := range o.LineItems() {
		items = append(items, LineItemDTO{ProductID: item.ProductID().Google(), Quantity: item.Quantity()})
	}

	return OrderDTO{
		ID: o.ID().Google(),
		Customer: datatypes.NewJSONType(CustomerDTO{
			ID:          c.ID().Google(),
			Name:        c.Name(),
			Phone:       c.Phone(),
			Address:     c.Address(),
			DeliveryTax: c.DeliveryTax(),
		}),
		LineItems:     datatypes.NewJSONSlice(items),
		Price:         o.Price(),
		DiscountID:    optionalID(o.DiscountID()),
		DeliverymanID: optionalID(o.DeliverymanID()),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		FinishedAt:    o.FinishedAt(),
	}
}

// ToDomain rebuilds the aggregate through order.RestoreOrder, so rows that break
// an invariant surface as errors instead of invalid orders.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	snapshot := dto.Customer.Data()
	customerID, err := kernel.UUIDFromGoogle(snapshot.ID)
	if err != nil {
		return nil, err
	}
	customer, err := order.NewCustomer(customerID, snapshot.Name, snapshot.Phone, snapshot.Address, snapshot.DeliveryTax)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, raw := range dto.LineItems {
		productID, idErr := kernel.UUIDFromGoogle(raw.ProductID)
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewLineItem(productID, raw.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	discountID, err := kernel.OptionalUUID(dto.DiscountID)
	if err != nil {
		return nil, err
	}
	deliverymanID, err := kernel.OptionalUUID(dto.DeliverymanID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customer, items, dto.Price, discountID, deliverymanID, status, dto.CreatedAt, dto.FinishedAt)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Google()
	return &raw
}
