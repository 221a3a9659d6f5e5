package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction; obtained before Begin they run on the plain
// connection. Commit writes the domain events of every aggregate added or
// updated through its repositories to the outbox before committing.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns ErrDuplicateEvent when an event's dedup key already exists;
	// the transaction is then left open for Rollback.
	Commit(ctx context.Context) error

	// Rollback returns an error when no transaction is active.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DeliverymanRepository() DeliverymanRepository
	DiscountRepository() DiscountRepository
	OutboxRepository() OutboxRepository
}
