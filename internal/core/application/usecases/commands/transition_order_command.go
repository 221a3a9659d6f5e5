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

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to a new status. DeliverymanID and
// FeeSnapshot are optional overrides of what the order already carries.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	target        order.Status
	deliverymanID *kernel.UUID
	feeSnapshot   *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand rejects an unknown target status and malformed ids
// with ErrInvalidRequest. Whether the transition is allowed is decided by the
// handler against the stored order.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	deliverymanID *kernel.UUID,
	feeSnapshot *decimal.Decimal,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setDeliverymanID(deliverymanID),
	); err != nil {
		return TransitionOrderCommand{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if feeSnapshot != nil {
		fee := *feeSnapshot
		cmd.feeSnapshot = &fee
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c TransitionOrderCommand) Target() order.Status          { return c.target }
func (c TransitionOrderCommand) DeliverymanID() *kernel.UUID   { return c.deliverymanID }
func (c TransitionOrderCommand) FeeSnapshot() *decimal.Decimal { return c.feeSnapshot }

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setDeliverymanID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliverymanId", err)
	}

	copied := *id
	c.deliverymanID = &copied
	return nil
}
