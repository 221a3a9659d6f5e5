package http_test

import (
	"context"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockTransitionOrderHandler struct{ mock.Mock }

func (m *MockTransitionOrderHandler) Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockResetWeekHandler struct{ mock.Mock }

func (m *MockResetWeekHandler) Handle(ctx context.Context, cmd commands.ResetDeliverymenWeekCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(
	ctx context.Context,
	query queries.ListOrdersQuery,
) ([]queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).([]queries.ListOrdersQueryResponse)
	return res, args.Error(1)
}

type MockListValidDiscountsHandler struct{ mock.Mock }

func (m *MockListValidDiscountsHandler) Handle(
	ctx context.Context,
	query queries.ListValidDiscountsQuery,
) ([]queries.ListValidDiscountsQueryResponse, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).([]queries.ListValidDiscountsQueryResponse)
	return res, args.Error(1)
}
