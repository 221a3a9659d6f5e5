package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a new order together with its
// order.created event, then counts the discount usage.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, ledger, time.Now, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	usage      UsageRecorder
	now        func() time.Time
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	usage UsageRecorder,
	now func() time.Time,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		usage:      usage,
		now:        now,
		logger:     loggerOrDiscard(logger).With("component", "create_order_handler"),
	}
}

// Handle stores the order in production. The discount usage increment runs
// after the commit and never undoes the order: its failures are only logged.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.OrderID(), cmd.Customer(), cmd.LineItems(), cmd.Price(), cmd.DiscountID(), h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.countDiscountUsage(ctx, created)
	return created, nil
}

func (h *CreateOrderCommandHandler) countDiscountUsage(ctx context.Context, created *order.Order) {
	discountID := created.DiscountID()
	if discountID == nil || h.usage == nil {
		return
	}

	if _, err := h.usage.IncrementUsage(ctx, *discountID); err != nil {
		h.logger.ErrorContext(ctx, "failed to count discount usage",
			"order_id", created.ID().String(),
			"discount_id", discountID.String(),
			"error", err,
		)
	}
}
