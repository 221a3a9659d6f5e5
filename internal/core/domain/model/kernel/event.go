package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state change. Events
// are collected on the aggregate and written to the outbox inside the same
// transaction as the change itself.
type DomainEvent interface {
	// EventID is unique per event instance.
	EventID() UUID

	// EventName is the routing name, e.g. "order.finished".
	EventName() string

	// AggregateID identifies the aggregate that raised the event. It is also the
	// partition key on the message broker.
	AggregateID() UUID

	// OccurredAt is the domain time of the change.
	OccurredAt() time.Time

	// DedupKey is non-empty for events that may be recorded at most once. The
	// outbox enforces it with a unique constraint.
	DedupKey() string
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
