package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// TransitionOrderCommandHandler advances an order and, when it finishes,
// credits the deliveryman. Everything happens in one transaction:
//
//  1. lock the order row (SELECT ... FOR UPDATE)
//  2. check the transition table
//  3. on Finished, credit the resolved bucket of the deliveryman
//  4. write status, finishedAt and deliveryman reference
//  5. commit, which also stores the status-changed event in the outbox
//
// A concurrent second completion waits on the row lock and then fails with
// order.ErrAlreadyFinished. If it slips past the lock the unique dedup key of
// the order.finished event rejects the commit with the same error.
type TransitionOrderCommandHandler struct {
	uowFactory  TransitionUoWFactory
	aggregators StatsAggregatorFactory
	now         func() time.Time
	logger      *slog.Logger
}

func NewTransitionOrderCommandHandler(
	uowFactory TransitionUoWFactory,
	aggregators StatsAggregatorFactory,
	now func() time.Time,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		aggregators: aggregators,
		now:         now,
		logger:      loggerOrDiscard(logger).With("component", "transition_order_handler"),
	}
}

// Handle returns the transitioned order.
//
// Errors:
//   - ErrOrderNotFound when the order does not exist
//   - order.ErrTransitionNotAllowed for moves outside the table
//   - order.ErrAlreadyFinished when the order is already finished
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
		}
		return nil, err
	}

	if err = current.Status().CanTransitionTo(cmd.Target()); err != nil {
		return nil, err
	}

	if cmd.Target() == order.Finished {
		if err = h.settle(ctx, uow.DeliverymanRepository(), current, cmd); err != nil {
			return nil, err
		}
	}

	if err = current.TransitionTo(cmd.Target(), cmd.DeliverymanID(), h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		if errors.Is(err, ports.ErrDuplicateEvent) {
			return nil, fmt.Errorf("%w: %w", order.ErrAlreadyFinished, err)
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "order transitioned",
		"order_id", current.ID().String(),
		"status", current.Status().String(),
	)
	return current, nil
}

// settle credits the completion. The deliveryman supplied with the command
// wins over the one on the order; the fee snapshot wins over the customer's
// delivery tax.
func (h *TransitionOrderCommandHandler) settle(
	ctx context.Context,
	repo ports.DeliverymanRepository,
	current *order.Order,
	cmd TransitionOrderCommand,
) error {
	deliverymanID := cmd.DeliverymanID()
	if deliverymanID == nil {
		deliverymanID = current.DeliverymanID()
	}
	if deliverymanID == nil {
		h.logger.WarnContext(ctx, "finished order has no deliveryman, statistics not credited",
			"order_id", current.ID().String(),
		)
		return nil
	}

	fee := current.Customer().DeliveryTax()
	if snapshot := cmd.FeeSnapshot(); snapshot != nil {
		fee = *snapshot
	}

	_, err := h.aggregators.Create(repo).ApplyCompletion(ctx, *deliverymanID, fee)
	return err
}
