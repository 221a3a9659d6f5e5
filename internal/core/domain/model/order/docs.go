// Package order models the order aggregate of the delivery business.
//
// An order embeds a snapshot of the customer it was sold to, its product lines,
// price and optional discount, and moves through a closed set of states:
//
//	production -> sending -> finished
//	production -> finished
//
// Completion (entering finished) is the one transition with side effects outside
// the aggregate: the application layer credits the deliveryman's statistics in the
// same transaction and the order.finished event, keyed by FinishedDedupKey, makes a
// second completion of the same order impossible.
package order
