// Package deliveryman models the deliveryman aggregate and its three statistic
// buckets (category, category6, category10). Buckets are credited once per
// completed order; the weekly view counter is reset by a fleet-wide batch.
package deliveryman
