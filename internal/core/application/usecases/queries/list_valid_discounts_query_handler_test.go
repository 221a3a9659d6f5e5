package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/discount"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDiscountLister struct{ mock.Mock }

func (m *MockDiscountLister) ListValid(ctx context.Context, now time.Time) ([]*discount.Discount, error) {
	args := m.Called(ctx, now)
	d, _ := args.Get(0).([]*discount.Discount)
	return d, args.Error(1)
}

func TestListValidDiscountsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	d, err := discount.NewDiscount(kernel.NewUUID(), "WEEKEND", now.Add(24*time.Hour), decimal.NewFromInt(15), discount.Percentage, "ifood")
	require.NoError(t, err)
	lister := new(MockDiscountLister)
	lister.On("ListValid", ctx, now).Return([]*discount.Discount{d}, nil).Once()

	h := queries.NewListValidDiscountsQueryHandler(lister, func() time.Time { return now })
	result, err := h.Handle(ctx, queries.NewListValidDiscountsQuery())

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, d.ID(), result[0].ID)
	assert.Equal(t, "WEEKEND", result[0].Name)
	assert.Equal(t, "percentage", result[0].Type)
	assert.Equal(t, "ifood", result[0].Partner)
	assert.True(t, result[0].Value.Equal(decimal.NewFromInt(15)))
	assert.Zero(t, result[0].TotalUse)
	lister.AssertExpectations(t)
}

func TestListValidDiscountsQueryHandler_Handle_Empty(t *testing.T) {
	ctx := t.Context()
	lister := new(MockDiscountLister)
	lister.On("ListValid", ctx, mock.Anything).Return(nil, nil).Once()

	h := queries.NewListValidDiscountsQueryHandler(lister, nil)
	result, err := h.Handle(ctx, queries.NewListValidDiscountsQuery())

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListValidDiscountsQueryHandler_Handle_Error(t *testing.T) {
	ctx := t.Context()
	lister := new(MockDiscountLister)
	lister.On("ListValid", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

	h := queries.NewListValidDiscountsQueryHandler(lister, nil)
	result, err := h.Handle(ctx, queries.NewListValidDiscountsQuery())

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestListValidDiscountsQueryHandler_Handle_NotConstructed(t *testing.T) {
	h := queries.NewListValidDiscountsQueryHandler(new(MockDiscountLister), nil)

	_, err := h.Handle(t.Context(), queries.ListValidDiscountsQuery{})

	require.ErrorIs(t, err, queries.ErrListValidDiscountsQueryIsNotConstructed)
}
