package deliveryman

import (
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BucketName identifies one of the three statistic buckets of a deliveryman.
type BucketName string

const (
	// Category collects deliveries of any fee other than 4 and 6.
	Category BucketName = "category"

	// Category6 collects deliveries with fee 4, paid 6 each.
	Category6 BucketName = "category6"

	// Category10 collects deliveries with fee 6, paid 10 each.
	Category10 BucketName = "category10"
)

// BucketNames lists every bucket.
func BucketNames() []BucketName {
	return []BucketName{Category, Category6, Category10}
}

func (n BucketName) Validate() error {
	switch n {
	case Category, Category6, Category10:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("bucket", fmt.Errorf("%q is not a bucket", string(n)))
	}
}

// Bucket counts deliveries and the payout they accumulated.
type Bucket struct {
	quantity int
	value    decimal.Decimal
}

func NewBucket(quantity int, value decimal.Decimal) (Bucket, error) {
	if quantity < 0 {
		return Bucket{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	return Bucket{quantity: quantity, value: value}, nil
}

func (b Bucket) Quantity() int          { return b.quantity }
func (b Bucket) Value() decimal.Decimal { return b.value }

// Add returns b with inc applied.
func (b Bucket) Add(inc BucketIncrement) Bucket {
	return Bucket{quantity: b.quantity + inc.Quantity, value: b.value.Add(inc.Value)}
}

// BucketIncrement is the credit one completed delivery adds to one bucket.
type BucketIncrement struct {
	Bucket   BucketName
	Quantity int
	Value    decimal.Decimal
}

func (i BucketIncrement) Validate() error {
	if err := i.Bucket.Validate(); err != nil {
		return err
	}
	if i.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", i.Quantity))
	}
	return nil
}
