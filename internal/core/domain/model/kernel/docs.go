// Package kernel holds the primitives shared by every aggregate of the order
// service: the UUID value object and the DomainEvent contract that aggregates
// use to hand their changes to the outbox.
package kernel
