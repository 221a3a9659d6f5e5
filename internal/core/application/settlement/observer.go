// Package settlement applies the side effects of the order lifecycle to
// deliveryman statistics and discount usage.
//
// Both services work on a repository handed in by the caller, so they run
// inside whatever transaction that repository belongs to. Lookups that miss are
// soft failures: they are logged, reported to the Observer and do not fail the
// caller.
package settlement

import "orderflow/internal/core/domain/model/deliveryman"

// Soft failure kinds reported to Observer.SoftFailure.
const (
	SoftFailureDeliverymanNotFound = "deliveryman_not_found"
	SoftFailureDiscountNotFound    = "discount_not_found"
)

// Observer receives settlement outcomes, typically for metrics.
type Observer interface {
	BucketCredited(bucket deliveryman.BucketName)
	SoftFailure(kind string)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) BucketCredited(deliveryman.BucketName) {}
func (NopObserver) SoftFailure(string)                    {}
