// Package services holds domain services: business rules that belong to no
// single aggregate.
//
// The package includes:
//   - TaxBucketResolver: maps an order's delivery fee to the deliveryman bucket
//     and payout credited on completion
package services
