package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is one product line of an order.
type LineItem struct {
	productID kernel.UUID
	quantity  int
	guard     guard.ConstructorGuard
}

// NewLineItem requires a product identity and a positive quantity.
func NewLineItem(productID kernel.UUID, quantity int) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("productId", err)
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return LineItem{productID: productID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

func (l LineItem) ProductID() kernel.UUID { return l.productID }
func (l LineItem) Quantity() int          { return l.quantity }
