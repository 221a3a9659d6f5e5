// Package api holds the HTTP contract of the service: the embedded OpenAPI
// document, its request and response types and the echo routing wrapper.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for OrderStatus.
const (
	OrderStatusProduction OrderStatus = "production"
	OrderStatusSending    OrderStatus = "sending"
	OrderStatusFinished   OrderStatus = "finished"
)

// Customer defines model for Customer.
type Customer struct {
	Address     *string            `json:"address,omitempty"`
	DeliveryTax float64            `json:"deliveryTax"`
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Phone       *string            `json:"phone,omitempty"`
}

// Discount defines model for Discount.
type Discount struct {
	ExpireDate time.Time          `json:"expireDate"`
	Id         openapi_types.UUID `json:"id"`
	Name       string             `json:"name"`
	Partner    *string            `json:"partner,omitempty"`
	TotalUse   int                `json:"totalUse"`
	Type       string             `json:"type"`
	Value      float64            `json:"value"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LineItem defines model for LineItem.
type LineItem struct {
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Customer   Customer            `json:"customer"`
	DiscountId *openapi_types.UUID `json:"discountId,omitempty"`
	LineItems  []LineItem          `json:"lineItems"`
	Price      float64             `json:"price"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt     time.Time           `json:"createdAt"`
	Customer      Customer            `json:"customer"`
	DeliverymanId *openapi_types.UUID `json:"deliverymanId,omitempty"`
	DiscountId    *openapi_types.UUID `json:"discountId,omitempty"`
	FinishedAt    *time.Time          `json:"finishedAt,omitempty"`
	Id            openapi_types.UUID  `json:"id"`
	LineItems     []LineItem          `json:"lineItems"`
	Price         float64             `json:"price"`
	Status        OrderStatus         `json:"status"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// StatusChange defines model for StatusChange.
type StatusChange struct {
	DeliveryTax   *float64            `json:"deliveryTax,omitempty"`
	DeliverymanId *openapi_types.UUID `json:"deliverymanId,omitempty"`
	Status        OrderStatus         `json:"status"`
}

// WeekReset defines model for WeekReset.
type WeekReset struct {
	Message string `json:"message"`
	Reset   int64  `json:"reset"`
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Status *OrderStatus `form:"status,omitempty" json:"status,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ChangeOrderStatusJSONRequestBody defines body for ChangeOrderStatus for application/json ContentType.
type ChangeOrderStatusJSONRequestBody = StatusChange
