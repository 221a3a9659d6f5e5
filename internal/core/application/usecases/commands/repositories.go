// Package commands contains the operations that change order lifecycle state.
// Every command is a value built through its constructor and executed by a
// handler inside a unit of work.
package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/deliveryman"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliverymanRepoFactory interface {
		DeliverymanRepository() ports.DeliverymanRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by commands that only write orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TransitionUoW spans the order and the deliveryman statistics it settles.
	//
	//	uow := factory.Create()
	//	err := uow.Begin(ctx)
	//	defer uow.Rollback(ctx)
	//
	//	order, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//	err = uow.DeliverymanRepository().CreditBucket(ctx, deliverymanID, inc)
	//	err = uow.OrderRepository().Update(ctx, order)
	//
	//	err = uow.Commit(ctx)
	TransitionUoW interface {
		TxManager
		OrderRepoFactory
		DeliverymanRepoFactory
	}

	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	DeliverymanUoW interface {
		TxManager
		DeliverymanRepoFactory
	}

	DeliverymanUoWFactory interface {
		Create() DeliverymanUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// Settlement services, built per unit of work on its repositories.
type (
	StatsAggregator interface {
		ApplyCompletion(ctx context.Context, deliverymanID kernel.UUID, fee decimal.Decimal) (*deliveryman.Deliveryman, error)
		ResetWeeklyCounters(ctx context.Context) (int64, error)
	}

	StatsAggregatorFactory interface {
		Create(repo ports.DeliverymanRepository) StatsAggregator
	}

	// UsageRecorder counts discount usage outside of any transaction.
	UsageRecorder interface {
		IncrementUsage(ctx context.Context, discountID kernel.UUID) (bool, error)
	}
)

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
