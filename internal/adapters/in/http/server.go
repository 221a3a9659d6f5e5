package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/core/application/authz"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// WeekResetMessage is returned after the weekly counters were reset.
const WeekResetMessage = "Expediente finalizado"

// Use case ports of the HTTP adapter.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}

	ResetDeliverymenWeekHandler interface {
		Handle(ctx context.Context, cmd commands.ResetDeliverymenWeekCommand) (int64, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
	}

	ListValidDiscountsHandler interface {
		Handle(ctx context.Context, query queries.ListValidDiscountsQuery) ([]queries.ListValidDiscountsQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder        CreateOrderHandler
	TransitionOrder    TransitionOrderHandler
	ResetWeek          ResetDeliverymenWeekHandler
	ListOrders         ListOrdersHandler
	ListValidDiscounts ListValidDiscountsHandler
}

// Server implements api.ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	policy   authz.Policy
	logger   *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, policy authz.Policy, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		policy:   policy,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	if err := s.authorize(ctx, authz.ActionCreateOrder); err != nil {
		return s.fail(ctx, err)
	}

	var body api.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, fmt.Errorf("%w: %w", commands.ErrInvalidRequest, err))
	}

	lineItems := make([]commands.LineItemInput, len(body.LineItems))
	for i, item := range body.LineItems {
		lineItems[i] = commands.LineItemInput{
			ProductID: toKernelUUID(item.ProductId),
			Quantity:  item.Quantity,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		&commands.CustomerInput{
			ID:          toKernelUUID(body.Customer.Id),
			Name:        body.Customer.Name,
			Phone:       deref(body.Customer.Phone),
			Address:     deref(body.Customer.Address),
			DeliveryTax: decimal.NewFromFloat(body.Customer.DeliveryTax),
		},
		lineItems,
		decimal.NewFromFloat(body.Price),
		toOptionalKernelUUID(body.DiscountId),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context, params api.GetOrdersParams) error {
	if err := s.authorize(ctx, authz.ActionListOrders); err != nil {
		return s.fail(ctx, err)
	}

	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(string(*params.Status))
		if err != nil {
			return s.fail(ctx, fmt.Errorf("%w: %w", commands.ErrInvalidRequest, err))
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return s.fail(ctx, fmt.Errorf("%w: %w", commands.ErrInvalidRequest, err))
	}

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromQuery(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error {
	if err := s.authorize(ctx, authz.ActionTransitionOrder); err != nil {
		return s.fail(ctx, err)
	}

	var body api.ChangeOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, fmt.Errorf("%w: %w", commands.ErrInvalidRequest, err))
	}

	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, fmt.Errorf("%w: %w", commands.ErrInvalidRequest, err))
	}

	var fee *decimal.Decimal
	if body.DeliveryTax != nil {
		v := decimal.NewFromFloat(*body.DeliveryTax)
		fee = &v
	}

	cmd, err := commands.NewTransitionOrderCommand(
		toKernelUUID(orderID),
		target,
		toOptionalKernelUUID(body.DeliverymanId),
		fee,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// GetDiscounts handles GET /api/v1/discounts.
func (s *Server) GetDiscounts(ctx echo.Context) error {
	if err := s.authorize(ctx, authz.ActionListDiscounts); err != nil {
		return s.fail(ctx, err)
	}

	discounts, err := s.handlers.ListValidDiscounts.Handle(ctx.Request().Context(), queries.NewListValidDiscountsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Discount, len(discounts))
	for i, d := range discounts {
		response[i] = discountFromQuery(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ResetDeliverymenWeek handles POST /api/v1/deliverymen/week/reset.
func (s *Server) ResetDeliverymenWeek(ctx echo.Context) error {
	if err := s.authorize(ctx, authz.ActionResetWeek); err != nil {
		return s.fail(ctx, err)
	}

	n, err := s.handlers.ResetWeek.Handle(ctx.Request().Context(), commands.NewResetDeliverymenWeekCommand())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, api.WeekReset{Reset: n, Message: WeekResetMessage})
}

func (s *Server) authorize(ctx echo.Context, action authz.Action) error {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return authz.ErrUnauthenticated
	}
	return s.policy.Authorize(principal, action)
}
