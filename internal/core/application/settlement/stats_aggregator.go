package settlement

import (
	"context"
	"errors"
	"log/slog"

	"orderflow/internal/core/domain/model/deliveryman"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DeliverymanStatsAggregator credits completed deliveries to deliveryman
// buckets and resets the weekly view counters.
type DeliverymanStatsAggregator struct {
	repo     ports.DeliverymanRepository
	resolver services.TaxBucketResolver
	observer Observer
	logger   *slog.Logger
}

// NewDeliverymanStatsAggregator binds the aggregator to repo. A nil observer
// is replaced by NopObserver.
func NewDeliverymanStatsAggregator(
	repo ports.DeliverymanRepository,
	logger *slog.Logger,
	observer Observer,
) *DeliverymanStatsAggregator {
	if observer == nil {
		observer = NopObserver{}
	}
	return &DeliverymanStatsAggregator{
		repo:     repo,
		resolver: services.NewTaxBucketResolver(),
		observer: observer,
		logger:   logger.With("component", "deliveryman_stats_aggregator"),
	}
}

// ApplyCompletion resolves the bucket for fee and credits it to the
// deliveryman with one atomic update, then returns the updated deliveryman.
//
// An unknown deliveryman returns (nil, nil) after a warning.
func (a *DeliverymanStatsAggregator) ApplyCompletion(
	ctx context.Context,
	deliverymanID kernel.UUID,
	fee decimal.Decimal,
) (*deliveryman.Deliveryman, error) {
	inc := a.resolver.Resolve(fee)

	if err := a.repo.CreditBucket(ctx, deliverymanID, inc); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			a.logger.WarnContext(ctx, "deliveryman not found, completion not credited",
				"deliveryman_id", deliverymanID.String(),
				"bucket", string(inc.Bucket),
			)
			a.observer.SoftFailure(SoftFailureDeliverymanNotFound)
			return nil, nil
		}
		return nil, err
	}
	a.observer.BucketCredited(inc.Bucket)

	return a.repo.Get(ctx, deliverymanID)
}

// ResetWeeklyCounters zeroes numberOfViewsPerWeek for every deliveryman and
// returns how many were reset.
func (a *DeliverymanStatsAggregator) ResetWeeklyCounters(ctx context.Context) (int64, error) {
	n, err := a.repo.ResetWeeklyViews(ctx)
	if err != nil {
		return 0, err
	}

	a.logger.InfoContext(ctx, "weekly counters reset", "deliverymen", n)
	return n, nil
}
