// Package authz decides which authenticated callers may run which operation.
package authz

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrForbidden       = errors.New("caller is not allowed to perform this action")
)

// Permission is the role carried in the access token.
type Permission int

const (
	Owner    Permission = 1
	Employee Permission = 2
)

func (p Permission) String() string {
	switch p {
	case Owner:
		return "owner"
	case Employee:
		return "employee"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// Principal is the authenticated caller.
type Principal struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Permission Permission `json:"permission"`
}

func (p Principal) Validate() error {
	if p.ID == "" || p.Name == "" || p.Permission == 0 {
		return ErrUnauthenticated
	}
	return nil
}

// Action names an operation subject to the policy.
type Action string

const (
	ActionCreateOrder     Action = "create_order"
	ActionListOrders      Action = "list_orders"
	ActionTransitionOrder Action = "transition_order"
	ActionListDiscounts   Action = "list_discounts"
	ActionResetWeek       Action = "reset_deliverymen_week"
)

// Policy lets every authenticated caller through, except for the actions
// switched to owner-only.
type Policy struct {
	TransitionOwnerOnly bool
	ResetOwnerOnly      bool
}

func (p Policy) Authorize(principal Principal, action Action) error {
	if err := principal.Validate(); err != nil {
		return err
	}
	if p.ownerOnly(action) && principal.Permission != Owner {
		return fmt.Errorf("%w: %s requires %s, caller is %s", ErrForbidden, action, Owner, principal.Permission)
	}
	return nil
}

func (p Policy) ownerOnly(action Action) bool {
	switch action {
	case ActionTransitionOrder:
		return p.TransitionOwnerOnly
	case ActionResetWeek:
		return p.ResetOwnerOnly
	default:
		return false
	}
}
