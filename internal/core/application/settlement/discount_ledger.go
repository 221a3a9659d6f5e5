package settlement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/discount"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// DiscountLedger counts discount usage and lists the discounts currently valid.
type DiscountLedger struct {
	repo     ports.DiscountRepository
	observer Observer
	logger   *slog.Logger
}

func NewDiscountLedger(repo ports.DiscountRepository, logger *slog.Logger, observer Observer) *DiscountLedger {
	if observer == nil {
		observer = NopObserver{}
	}
	return &DiscountLedger{
		repo:     repo,
		observer: observer,
		logger:   logger.With("component", "discount_ledger"),
	}
}

// IncrementUsage adds one to the discount's totalUse. It reports false with a
// nil error when the discount does not exist.
func (l *DiscountLedger) IncrementUsage(ctx context.Context, discountID kernel.UUID) (bool, error) {
	if err := l.repo.IncrementTotalUse(ctx, discountID); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			l.logger.WarnContext(ctx, "discount not found, usage not counted", "discount_id", discountID.String())
			l.observer.SoftFailure(SoftFailureDiscountNotFound)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListValid returns the discounts with now <= expireDate.
func (l *DiscountLedger) ListValid(ctx context.Context, now time.Time) ([]*discount.Discount, error) {
	return l.repo.ListValid(ctx, now)
}
