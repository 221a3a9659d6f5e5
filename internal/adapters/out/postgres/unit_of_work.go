// Package postgres implements the Unit of Work over a GORM transaction and wires
// the repositories of every aggregate to it.
//
// Aggregates added or updated through a unit of work's repositories are tracked.
// Commit drains their domain events into the outbox table inside the same
// transaction, so a state change and the event announcing it are stored
// together or not at all:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	...
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx) // writes order.finished to the outbox, then commits
//
// Each UnitOfWork holds one transaction and must not be shared between
// goroutines.
package postgres

import (
	"context"
	"slices"

	"orderflow/internal/adapters/out/postgres/deliverymanrepo"
	"orderflow/internal/adapters/out/postgres/discountrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/outboxrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// modified in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []kernel.EventSource
}

// Begin opens the transaction. Calling it again while a transaction is open is
// a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit stores the pending domain events of every tracked aggregate in the
// outbox and commits. When storing the events fails (ports.ErrDuplicateEvent
// included) the transaction stays open so the caller's Rollback releases it.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	var pending []kernel.DomainEvent
	for _, aggregate := range uow.trackedAggregates {
		pending = append(pending, aggregate.DomainEvents()...)
	}
	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, pending...); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, aggregate := range uow.trackedAggregates {
		aggregate.ClearDomainEvents()
	}
	uow.trackedAggregates = nil
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates. Returns
// gorm.ErrInvalidTransaction when no transaction is open, which is the normal
// case for a deferred Rollback after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DeliverymanRepository() ports.DeliverymanRepository {
	return deliverymanrepo.NewGormDeliverymanRepository(uow.conn())
}

func (uow *GormUnitOfWork) DiscountRepository() ports.DiscountRepository {
	return discountrepo.NewGormDiscountRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate whose events Commit must store. Tracking
// the same aggregate twice has no further effect.
func (uow *GormUnitOfWork) TrackAggregate(aggregate kernel.EventSource) {
	if slices.Contains(uow.trackedAggregates, aggregate) {
		return
	}
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

// conn is the open transaction, or the plain connection before Begin.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
