package services

import (
	"orderflow/internal/core/domain/model/deliveryman"

	"github.com/shopspring/decimal"
)

var (
	feeForCategory6  = decimal.NewFromInt(4)
	feeForCategory10 = decimal.NewFromInt(6)

	category6Payout  = decimal.NewFromInt(6)
	category10Payout = decimal.NewFromInt(10)
)

// TaxBucketResolver maps the delivery fee of a completed order to the
// deliveryman bucket it is credited to.
//
// The table is literal, not a formula:
//
//	fee == 4       -> category6,  +6
//	fee == 6       -> category10, +10
//	anything else  -> category,   +fee
//
// Fees are compared with decimal equality, so 4.00 matches 4 and 4.01 does not.
// Every result credits exactly one unit of quantity.
//
// Example usage:
//
//	resolver := NewTaxBucketResolver()
//	inc := resolver.Resolve(decimal.NewFromInt(4))
//	// inc == BucketIncrement{Bucket: deliveryman.Category6, Quantity: 1, Value: 6}
type TaxBucketResolver struct{}

// NewTaxBucketResolver creates a resolver. It is stateless and safe for
// concurrent use.
func NewTaxBucketResolver() TaxBucketResolver {
	return TaxBucketResolver{}
}

// Resolve is total: zero, negative and unmatched fees fall into category and add
// the fee itself.
func (TaxBucketResolver) Resolve(fee decimal.Decimal) deliveryman.BucketIncrement {
	switch {
	case fee.Equal(feeForCategory6):
		return deliveryman.BucketIncrement{Bucket: deliveryman.Category6, Quantity: 1, Value: category6Payout}
	case fee.Equal(feeForCategory10):
		return deliveryman.BucketIncrement{Bucket: deliveryman.Category10, Quantity: 1, Value: category10Payout}
	default:
		return deliveryman.BucketIncrement{Bucket: deliveryman.Category, Quantity: 1, Value: fee}
	}
}
