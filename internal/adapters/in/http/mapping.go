package http

import (
	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// toKernelUUID maps the nil UUID to the zero kernel.UUID, which every command
// rejects as invalid.
func toKernelUUID(id openapi_types.UUID) kernel.UUID {
	u, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}
	}
	return u
}

func toOptionalKernelUUID(id *openapi_types.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	u := toKernelUUID(*id)
	return &u
}

func toOptionalAPIUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	u := id.Google()
	return &u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orderFromDomain(o *order.Order) api.Order {
	c := o.Customer()
	items := o.LineItems()
	lineItems := make([]api.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = api.LineItem{ProductId: item.ProductID().Google(), Quantity: item.Quantity()}
	}
	return api.Order{
		Id: o.ID().Google(),
		Customer: api.Customer{
			Id:          c.ID().Google(),
			Name:        c.Name(),
			Phone:       optional(c.Phone()),
			Address:     optional(c.Address()),
			DeliveryTax: c.DeliveryTax().InexactFloat64(),
		},
		LineItems:     lineItems,
		Price:         o.Price().InexactFloat64(),
		DiscountId:    toOptionalAPIUUID(o.DiscountID()),
		DeliverymanId: toOptionalAPIUUID(o.DeliverymanID()),
		Status:        api.OrderStatus(o.Status().String()),
		CreatedAt:     o.CreatedAt(),
		FinishedAt:    o.FinishedAt(),
	}
}

func orderFromQuery(o queries.ListOrdersQueryResponse) api.Order {
	lineItems := make([]api.LineItem, len(o.LineItems))
	for i, item := range o.LineItems {
		lineItems[i] = api.LineItem{ProductId: item.ProductID.Google(), Quantity: item.Quantity}
	}
	return api.Order{
		Id: o.ID.Google(),
		Customer: api.Customer{
			Id:          o.Customer.ID.Google(),
			Name:        o.Customer.Name,
			Phone:       optional(o.Customer.Phone),
			Address:     optional(o.Customer.Address),
			DeliveryTax: o.Customer.DeliveryTax.InexactFloat64(),
		},
		LineItems:     lineItems,
		Price:         o.Price.InexactFloat64(),
		DiscountId:    toOptionalAPIUUID(o.DiscountID),
		DeliverymanId: toOptionalAPIUUID(o.DeliverymanID),
		Status:        api.OrderStatus(o.Status.String()),
		CreatedAt:     o.CreatedAt,
		FinishedAt:    o.FinishedAt,
	}
}

func discountFromQuery(d queries.ListValidDiscountsQueryResponse) api.Discount {
	return api.Discount{
		Id:         d.ID.Google(),
		Name:       d.Name,
		ExpireDate: d.ExpireDate,
		Value:      d.Value.InexactFloat64(),
		Type:       d.Type,
		Partner:    optional(d.Partner),
		TotalUse:   d.TotalUse,
	}
}
