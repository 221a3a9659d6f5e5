package discount

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDiscountIsNotConstructed = errors.New("Discount must be created via NewDiscount or RestoreDiscount")

// Type tells how Value is applied to an order price.
type Type string

const (
	Percentage Type = "percentage"
	Fixed      Type = "fixed"
)

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	if t != Percentage && t != Fixed {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is neither percentage nor fixed", string(t)))
	}
	return nil
}

// Discount is a discount code. TotalUse counts the orders created with it and
// never decreases.
type Discount struct {
	id         kernel.UUID
	name       string
	expireDate time.Time
	value      decimal.Decimal
	kind       Type
	partner    string
	totalUse   int
	guard      guard.ConstructorGuard
}

// NewDiscount creates an unused discount.
func NewDiscount(
	id kernel.UUID,
	name string,
	expireDate time.Time,
	value decimal.Decimal,
	kind Type,
	partner string,
) (*Discount, error) {
	return RestoreDiscount(id, name, expireDate, value, kind, partner, 0)
}

// RestoreDiscount rebuilds a persisted discount.
func RestoreDiscount(
	id kernel.UUID,
	name string,
	expireDate time.Time,
	value decimal.Decimal,
	kind Type,
	partner string,
	totalUse int,
) (*Discount, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if expireDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("expireDate"))
	}
	if value.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("value", fmt.Errorf("%s is negative", value)))
	}
	if err := kind.Validate(); err != nil {
		errList = append(errList, err)
	}
	if totalUse < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("totalUse", totalUse, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Discount{
		id:         id,
		name:       strings.TrimSpace(name),
		expireDate: expireDate,
		value:      value,
		kind:       kind,
		partner:    partner,
		totalUse:   totalUse,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (d *Discount) Validate() error {
	if d == nil {
		return ErrDiscountIsNotConstructed
	}
	return d.guard.Validate(ErrDiscountIsNotConstructed)
}

func (d *Discount) ID() kernel.UUID        { return d.id }
func (d *Discount) Name() string           { return d.name }
func (d *Discount) ExpireDate() time.Time  { return d.expireDate }
func (d *Discount) Value() decimal.Decimal { return d.value }
func (d *Discount) Type() Type             { return d.kind }
func (d *Discount) Partner() string        { return d.partner }
func (d *Discount) TotalUse() int          { return d.totalUse }

// IsValidAt reports whether the discount can still be used at now. The expiry
// instant itself is still valid.
func (d *Discount) IsValidAt(now time.Time) bool {
	return !now.After(d.expireDate)
}
