package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	CreatedEventName       = "order.created"
	StatusChangedEventName = "order.status_changed"
	FinishedEventName      = "order.finished"
)

// FinishedDedupKey is the uniqueness key of the completion event. At most one
// outbox row may carry it, which makes completion idempotent per order.
func FinishedDedupKey(orderID kernel.UUID) string {
	return "order-finished:" + orderID.String()
}

// CreatedEvent is raised by NewOrder.
type CreatedEvent struct {
	ID         kernel.UUID     `json:"eventId"`
	OrderID    kernel.UUID     `json:"orderId"`
	CustomerID kernel.UUID     `json:"customerId"`
	Price      decimal.Decimal `json:"price"`
	DiscountID *kernel.UUID    `json:"discountId,omitempty"`
	At         time.Time       `json:"occurredAt"`
}

func (e CreatedEvent) EventID() kernel.UUID     { return e.ID }
func (e CreatedEvent) EventName() string        { return CreatedEventName }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time    { return e.At }
func (e CreatedEvent) DedupKey() string         { return "" }

// StatusChangedEvent is raised by every successful transition. When To is
// Finished the event is named order.finished and carries the dedup key.
type StatusChangedEvent struct {
	ID            kernel.UUID  `json:"eventId"`
	OrderID       kernel.UUID  `json:"orderId"`
	From          string       `json:"from"`
	To            string       `json:"to"`
	DeliverymanID *kernel.UUID `json:"deliverymanId,omitempty"`
	At            time.Time    `json:"occurredAt"`
}

func (e StatusChangedEvent) EventID() kernel.UUID     { return e.ID }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }

func (e StatusChangedEvent) EventName() string {
	if e.To == Finished.String() {
		return FinishedEventName
	}
	return StatusChangedEventName
}

func (e StatusChangedEvent) DedupKey() string {
	if e.To == Finished.String() {
		return FinishedDedupKey(e.OrderID)
	}
	return ""
}
