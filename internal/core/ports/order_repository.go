// Package ports defines the persistence and messaging contracts the application
// layer depends on. Adapters under internal/adapters implement them.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add inserts a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the mutable part of an order: status, finishedAt and the
	// deliveryman reference. Returns an errs.ObjectNotFoundError when the order
	// does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order. Returns an errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and locks its row until the surrounding
	// transaction ends (SELECT ... FOR UPDATE). Concurrent transitions of the same
	// order serialize on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
