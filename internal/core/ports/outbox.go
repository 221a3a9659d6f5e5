package ports

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// ErrDuplicateEvent is returned when an event's dedup key was already stored.
var ErrDuplicateEvent = errors.New("event with the same dedup key already recorded")

// OutboxMessage is a stored domain event waiting to be relayed.
type OutboxMessage struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	DedupKey    string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository stores domain events next to the state change that raised
// them and hands them to the relay.
type OutboxRepository interface {
	// Add stores events. Must run inside the transaction of the change. Returns
	// ErrDuplicateEvent when a non-empty dedup key already exists.
	Add(ctx context.Context, events ...kernel.DomainEvent) error

	// FetchPending returns up to limit unsent messages, oldest first, locking them
	// so concurrent relays skip them.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent stamps sent_at on the given messages.
	MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
