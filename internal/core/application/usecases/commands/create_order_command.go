package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CustomerInput is the customer as submitted with a new order.
type CustomerInput struct {
	ID          kernel.UUID
	Name        string
	Phone       string
	Address     string
	DeliveryTax decimal.Decimal
}

// LineItemInput is one submitted line item.
type LineItemInput struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand opens a new order in production.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), &CustomerInput{...}, items, price, nil)
//	if errors.Is(err, ErrInvalidRequest) {
//	    // 400
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customer   order.Customer
	lineItems  []order.LineItem
	price      decimal.Decimal
	discountID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the input into domain values. Every failure
// wraps ErrInvalidRequest; a nil customer, a customer without id and a
// placeholder customer name are all rejected.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer *CustomerInput,
	lineItems []LineItemInput,
	price decimal.Decimal,
	discountID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setLineItems(lineItems),
		cmd.setPrice(price),
		cmd.setDiscountID(discountID),
	); err != nil {
		return CreateOrderCommand{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c CreateOrderCommand) Customer() order.Customer    { return c.customer }
func (c CreateOrderCommand) LineItems() []order.LineItem { return c.lineItems }
func (c CreateOrderCommand) Price() decimal.Decimal      { return c.price }
func (c CreateOrderCommand) DiscountID() *kernel.UUID    { return c.discountID }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(in *CustomerInput) error {
	if in == nil {
		return errs.NewValueIsRequiredError("customer")
	}

	customer, err := order.NewCustomer(in.ID, in.Name, in.Phone, in.Address, in.DeliveryTax)
	if err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setLineItems(in []LineItemInput) error {
	items := make([]order.LineItem, 0, len(in))
	for i, item := range in {
		li, err := order.NewLineItem(item.ProductID, item.Quantity)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lineItems[%d]", i), err)
		}
		items = append(items, li)
	}

	c.lineItems = items
	return nil
}

func (c *CreateOrderCommand) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), 0, "unbounded")
	}

	c.price = price
	return nil
}

func (c *CreateOrderCommand) setDiscountID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("discountId", err)
	}

	copied := *id
	c.discountID = &copied
	return nil
}
