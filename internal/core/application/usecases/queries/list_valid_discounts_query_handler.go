package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/discount"
)

// ValidDiscountLister is satisfied by settlement.DiscountLedger.
type ValidDiscountLister interface {
	ListValid(ctx context.Context, now time.Time) ([]*discount.Discount, error)
}

type ListValidDiscountsQueryHandler struct {
	lister ValidDiscountLister
	now    func() time.Time
}

func NewListValidDiscountsQueryHandler(lister ValidDiscountLister, now func() time.Time) ListValidDiscountsQueryHandler {
	if now == nil {
		now = time.Now
	}
	return ListValidDiscountsQueryHandler{lister: lister, now: now}
}

// Handle returns discounts with now <= expireDate, in storage order.
func (h ListValidDiscountsQueryHandler) Handle(
	ctx context.Context,
	query ListValidDiscountsQuery,
) ([]ListValidDiscountsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	discounts, err := h.lister.ListValid(ctx, h.now())
	if err != nil {
		return nil, err
	}

	resp := make([]ListValidDiscountsQueryResponse, 0, len(discounts))
	for _, d := range discounts {
		resp = append(resp, ListValidDiscountsQueryResponse{
			ID:         d.ID(),
			Name:       d.Name(),
			ExpireDate: d.ExpireDate(),
			Value:      d.Value(),
			Type:       string(d.Type()),
			Partner:    d.Partner(),
			TotalUse:   d.TotalUse(),
		})
	}
	return resp, nil
}
