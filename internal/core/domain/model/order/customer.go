package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCustomerIsNotConstructed is returned by Customer.Validate for zero values.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer")

// placeholderNames are the values front-ends send when no customer was picked.
var placeholderNames = []string{"nenhum", "none", "no customer selected"}

// Customer is the snapshot of the customer taken when the order is placed. It is
// embedded in the order, not referenced, so later edits of the customer record do
// not change what an order was sold to.
type Customer struct {
	id          kernel.UUID
	name        string
	phone       string
	address     string
	deliveryTax decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewCustomer validates the snapshot. The identity is required and the name must
// be present and must not be one of the "no customer selected" placeholders.
func NewCustomer(id kernel.UUID, name, phone, address string, deliveryTax decimal.Decimal) (Customer, error) {
	if err := errors.Join(id.Validate(), validateCustomerName(name)); err != nil {
		return Customer{}, errs.NewValueIsInvalidErrorWithCause("customer", err)
	}

	return Customer{
		id:          id,
		name:        strings.TrimSpace(name),
		phone:       phone,
		address:     address,
		deliveryTax: deliveryTax,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// IsPlaceholderName reports whether name is a "no customer selected" marker.
func IsPlaceholderName(name string) bool {
	trimmed := strings.TrimSpace(name)
	for _, p := range placeholderNames {
		if strings.EqualFold(trimmed, p) {
			return true
		}
	}
	return false
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if IsPlaceholderName(name) {
		return fmt.Errorf("%q is a placeholder, not a customer", name)
	}
	return nil
}

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c Customer) ID() kernel.UUID              { return c.id }
func (c Customer) Name() string                 { return c.name }
func (c Customer) Phone() string                { return c.phone }
func (c Customer) Address() string              { return c.address }
func (c Customer) DeliveryTax() decimal.Decimal { return c.deliveryTax }
