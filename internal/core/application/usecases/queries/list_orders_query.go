// Package queries contains read-only operations. Handlers read straight from
// the database into response structs and never load aggregates.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, optionally only those in one status.
//
// Example:
//
//	sending := order.Sending
//	query, err := NewListOrdersQuery(&sending)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery accepts a nil status for "all orders".
func NewListOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status is nil when every status is wanted.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// ListOrdersQueryResponse is one order as stored.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	Customer      OrderCustomer
	LineItems     []OrderLineItem
	Price         decimal.Decimal
	DiscountID    *kernel.UUID
	DeliverymanID *kernel.UUID
	Status        order.Status
	CreatedAt     time.Time
	FinishedAt    *time.Time
}

// OrderCustomer mirrors the jsonb customer snapshot.
type OrderCustomer struct {
	ID          kernel.UUID     `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	DeliveryTax decimal.Decimal `json:"deliveryTax"`
}

// OrderLineItem mirrors one element of the jsonb line items.
type OrderLineItem struct {
	ProductID kernel.UUID `json:"productId"`
	Quantity  int         `json:"quantity"`
}
