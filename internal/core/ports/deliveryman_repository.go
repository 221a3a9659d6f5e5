package ports

import (
	"context"

	"orderflow/internal/core/domain/model/deliveryman"
	"orderflow/internal/core/domain/model/kernel"
)

// DeliverymanRepository persists deliverymen and their statistics.
type DeliverymanRepository interface {
	Add(ctx context.Context, aggregate *deliveryman.Deliveryman) error

	// Get returns an errs.ObjectNotFoundError when the deliveryman does not exist.
	Get(ctx context.Context, id kernel.UUID) (*deliveryman.Deliveryman, error)

	// CreditBucket applies inc to one bucket in a single atomic statement:
	//
	//	quantity = COALESCE(quantity, 0) + inc.Quantity
	//	value    = COALESCE(value, 0) + inc.Value
	//
	// Concurrent credits never lose updates. Returns an errs.ObjectNotFoundError
	// when no row matched.
	CreditBucket(ctx context.Context, id kernel.UUID, inc deliveryman.BucketIncrement) error

	// ResetWeeklyViews sets numberOfViewsPerWeek to 0 on every deliveryman and
	// returns the number of rows touched. Buckets are not modified.
	ResetWeeklyViews(ctx context.Context) (int64, error)
}
