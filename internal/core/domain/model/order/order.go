package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder
	// or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrFinishedAtMismatch is returned by RestoreOrder when finishedAt and status
	// disagree.
	ErrFinishedAtMismatch = errors.New("finishedAt must be set if and only if the order is finished")
)

// Order is the aggregate root of the order lifecycle.
//
// Invariants:
//   - the customer snapshot is a constructed, non-placeholder Customer
//   - price is not negative
//   - finishedAt is non-nil if and only if status is Finished, and is set once
//   - status only moves along the transition table (see Status.CanTransitionTo)
//
// Every change records a domain event; the unit of work drains them into the
// outbox when it commits.
type Order struct {
	id            kernel.UUID
	customer      Customer
	lineItems     []LineItem
	price         decimal.Decimal
	discountID    *kernel.UUID
	deliverymanID *kernel.UUID
	status        Status
	createdAt     time.Time
	finishedAt    *time.Time

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewOrder opens an order in Production.
//
// Parameters:
//   - id: identity of the new order
//   - customer: snapshot built by NewCustomer
//   - lineItems: product lines, each built by NewLineItem
//   - price: total price, must not be negative
//   - discountID: optional discount applied to the order
//   - now: creation time
//
// Returns all validation failures joined, or the order with a pending
// order.created event.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	lineItems []LineItem,
	price decimal.Decimal,
	discountID *kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Production,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setLineItems(lineItems),
		o.setPrice(price),
		o.setDiscountID(discountID),
	); err != nil {
		return nil, err
	}

	o.raise(CreatedEvent{
		ID:         kernel.NewUUID(),
		OrderID:    o.id,
		CustomerID: o.customer.ID(),
		Price:      o.price,
		DiscountID: o.discountID,
		At:         o.createdAt,
	})

	return o, nil
}

// RestoreOrder rebuilds a persisted order. It runs the same validation as
// NewOrder plus the status and finishedAt checks, and records no events.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	lineItems []LineItem,
	price decimal.Decimal,
	discountID *kernel.UUID,
	deliverymanID *kernel.UUID,
	status Status,
	createdAt time.Time,
	finishedAt *time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setLineItems(lineItems),
		o.setPrice(price),
		o.setDiscountID(discountID),
		o.setDeliverymanID(deliverymanID),
		status.Validate(),
		validateFinishedAt(status, finishedAt),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.finishedAt = finishedAt
	return o, nil
}

// Validate reports whether the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) Customer() Customer          { return o.customer }
func (o *Order) LineItems() []LineItem       { return slices.Clone(o.lineItems) }
func (o *Order) Price() decimal.Decimal      { return o.price }
func (o *Order) DiscountID() *kernel.UUID    { return o.discountID }
func (o *Order) DeliverymanID() *kernel.UUID { return o.deliverymanID }
func (o *Order) Status() Status              { return o.status }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) FinishedAt() *time.Time      { return o.finishedAt }

// IsEqual compares identities.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// TransitionTo moves the order to target.
//
// When deliverymanID is non-nil it replaces the order's deliveryman reference.
// Entering Finished stamps finishedAt with now. Any other target leaves
// finishedAt untouched.
//
// Returns ErrAlreadyFinished or ErrTransitionNotAllowed (see Status.CanTransitionTo)
// without modifying the order.
func (o *Order) TransitionTo(target Status, deliverymanID *kernel.UUID, now time.Time) error {
	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}
	if deliverymanID != nil {
		if err := deliverymanID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("deliverymanId", err)
		}
	}

	from := o.status
	o.status = target
	if deliverymanID != nil {
		id := *deliverymanID
		o.deliverymanID = &id
	}
	if target == Finished {
		at := now.UTC()
		o.finishedAt = &at
	}

	o.raise(StatusChangedEvent{
		ID:            kernel.NewUUID(),
		OrderID:       o.id,
		From:          from.String(),
		To:            target.String(),
		DeliverymanID: o.deliverymanID,
		At:            now.UTC(),
	})
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return slices.Clone(o.events)
}

// ClearDomainEvents is called once the events were persisted.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customer = c
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lineItems[%d]", i), err)
		}
	}
	o.lineItems = slices.Clone(items)
	return nil
}

func (o *Order) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	o.price = price
	return nil
}

func (o *Order) setDiscountID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("discountId", err)
	}
	o.discountID = id
	return nil
}

func (o *Order) setDeliverymanID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliverymanId", err)
	}
	o.deliverymanID = id
	return nil
}

func validateFinishedAt(status Status, finishedAt *time.Time) error {
	if (finishedAt != nil) != (status == Finished) {
		return fmt.Errorf("%w: status %s, finishedAt set: %t", ErrFinishedAtMismatch, status, finishedAt != nil)
	}
	return nil
}
