package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/discount"
	"orderflow/internal/core/domain/model/kernel"
)

// DiscountRepository persists discount codes.
type DiscountRepository interface {
	Add(ctx context.Context, aggregate *discount.Discount) error

	// Get returns an errs.ObjectNotFoundError when the discount does not exist.
	Get(ctx context.Context, id kernel.UUID) (*discount.Discount, error)

	// IncrementTotalUse runs total_use = total_use + 1 as one statement. Returns an
	// errs.ObjectNotFoundError when no row matched.
	IncrementTotalUse(ctx context.Context, id kernel.UUID) error

	// ListValid returns discounts with expire_date >= now in storage order.
	ListValid(ctx context.Context, now time.Time) ([]*discount.Discount, error)
}
