package commands

import (
	"context"
)

// ResetDeliverymenWeekCommandHandler runs the weekly reset. It is idempotent
// and leaves the buckets alone.
type ResetDeliverymenWeekCommandHandler struct {
	uowFactory  DeliverymanUoWFactory
	aggregators StatsAggregatorFactory
}

func NewResetDeliverymenWeekCommandHandler(
	uowFactory DeliverymanUoWFactory,
	aggregators StatsAggregatorFactory,
) ResetDeliverymenWeekCommandHandler {
	return ResetDeliverymenWeekCommandHandler{
		uowFactory:  uowFactory,
		aggregators: aggregators,
	}
}

// Handle returns the number of deliverymen reset.
func (h *ResetDeliverymenWeekCommandHandler) Handle(ctx context.Context, cmd ResetDeliverymenWeekCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := h.aggregators.Create(uow.DeliverymanRepository()).ResetWeeklyCounters(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}
