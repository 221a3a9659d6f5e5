package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListValidDiscountsQueryIsNotConstructed = errors.New(
	"ListValidDiscountsQuery must be created via NewListValidDiscountsQuery constructor",
)

// ListValidDiscountsQuery lists the discounts that have not expired yet.
type ListValidDiscountsQuery struct {
	guard guard.ConstructorGuard
}

func NewListValidDiscountsQuery() ListValidDiscountsQuery {
	return ListValidDiscountsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListValidDiscountsQuery) Validate() error {
	return q.guard.Validate(ErrListValidDiscountsQueryIsNotConstructed)
}

type ListValidDiscountsQueryResponse struct {
	ID         kernel.UUID
	Name       string
	ExpireDate time.Time
	Value      decimal.Decimal
	Type       string
	Partner    string
	TotalUse   int
}
