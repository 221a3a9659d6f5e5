package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/core/application/authz"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const secret = "test-secret"

var now = time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC)

type RouterTestSuite struct {
	suite.Suite
	createOrder *MockCreateOrderHandler
	transition  *MockTransitionOrderHandler
	resetWeek   *MockResetWeekHandler
	listOrders  *MockListOrdersHandler
	discounts   *MockListValidDiscountsHandler
	metrics     *metrics.Metrics
	verifier    *httpadapter.TokenVerifier
	policy      authz.Policy
	ownerToken  string
	staffToken  string
}

func (s *RouterTestSuite) SetupTest() {
	s.createOrder = new(MockCreateOrderHandler)
	s.transition = new(MockTransitionOrderHandler)
	s.resetWeek = new(MockResetWeekHandler)
	s.listOrders = new(MockListOrdersHandler)
	s.discounts = new(MockListValidDiscountsHandler)
	s.metrics = metrics.New()
	s.verifier = httpadapter.NewTokenVerifier(secret)
	s.policy = authz.Policy{}

	var err error
	s.ownerToken, err = s.verifier.Issue(authz.Principal{ID: "1", Name: "Ana", Permission: authz.Owner}, time.Hour, time.Now())
	s.Require().NoError(err)
	s.staffToken, err = s.verifier.Issue(authz.Principal{ID: "2", Name: "Bruno", Permission: authz.Employee}, time.Hour, time.Now())
	s.Require().NoError(err)
}

func (s *RouterTestSuite) router() *echo.Echo {
	logger := slog.New(slog.DiscardHandler)
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        s.createOrder,
		TransitionOrder:    s.transition,
		ResetWeek:          s.resetWeek,
		ListOrders:         s.listOrders,
		ListValidDiscounts: s.discounts,
	}, s.policy, logger)

	e, err := httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:         server,
		Verifier:       s.verifier,
		Observer:       s.metrics,
		MetricsHandler: s.metrics.Handler(),
		Logger:         logger,
		RequestTimeout: 5 * time.Second,
	})
	s.Require().NoError(err)
	return e
}

func (s *RouterTestSuite) do(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) decodeError(rec *httptest.ResponseRecorder) api.Error {
	var body api.Error
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *RouterTestSuite) storedOrder(status order.Status, deliveryman *kernel.UUID) *order.Order {
	customer, err := order.NewCustomer(kernel.NewUUID(), "Maria", "1199", "Rua A", decimal.NewFromInt(6))
	s.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), 2)
	s.Require().NoError(err)

	var finishedAt *time.Time
	if status == order.Finished {
		finishedAt = &now
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), customer, []order.LineItem{item}, decimal.NewFromInt(40),
		nil, deliveryman, status, now.Add(-time.Hour), finishedAt)
	s.Require().NoError(err)
	return o
}

func newOrderBody(customerName string) string {
	return fmt.Sprintf(`{
		"customer": {"id": %q, "name": %q, "phone": "1199", "deliveryTax": 4},
		"lineItems": [{"productId": %q, "quantity": 2}],
		"price": 35.5
	}`, kernel.NewUUID().String(), customerName, kernel.NewUUID().String())
}

func (s *RouterTestSuite) TestHealth_IsPublic() {
	rec := s.do(http.MethodGet, "/health", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *RouterTestSuite) TestUnknownRoute_RendersErrorBody() {
	rec := s.do(http.MethodGet, "/nowhere", "", "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	s.Equal(api.Error{Code: http.StatusNotFound, Message: "Not Found"}, s.decodeError(rec))
}

func (s *RouterTestSuite) TestKnownRoute_WrongMethod_RendersErrorBody() {
	rec := s.do(http.MethodDelete, "/health", "", "")

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Equal(api.Error{Code: http.StatusMethodNotAllowed, Message: "Method Not Allowed"}, s.decodeError(rec))
}

func (s *RouterTestSuite) TestMetrics_CountsServedRequests() {
	e := s.router()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `orderflow_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func (s *RouterTestSuite) TestSwagger_ServesDocument() {
	rec := s.do(http.MethodGet, "/swagger/doc.json", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"title":"Orderflow"`)
}

func (s *RouterTestSuite) TestAPI_WithoutToken_Unauthorized() {
	rec := s.do(http.MethodGet, "/api/v1/orders", "", "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("token not sent", s.decodeError(rec).Message)
	s.listOrders.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestAPI_TokenWithOtherSecret_Unauthorized() {
	token, err := httpadapter.NewTokenVerifier("other").Issue(
		authz.Principal{ID: "1", Name: "Ana", Permission: authz.Owner}, time.Hour, time.Now())
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/v1/orders", token, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("invalid token", s.decodeError(rec).Message)
}

func (s *RouterTestSuite) TestAPI_MalformedHeader_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "token_invalido")
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestCreateOrder_Created() {
	created := s.storedOrder(order.Production, nil)
	s.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Customer().Name() == "Maria" &&
			cmd.Customer().DeliveryTax().Equal(decimal.NewFromInt(4)) &&
			cmd.Price().Equal(decimal.RequireFromString("35.5")) &&
			len(cmd.LineItems()) == 1 &&
			cmd.DiscountID() == nil
	})).Return(created, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders", s.staffToken, newOrderBody("Maria"))

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var body api.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(created.ID().Google(), body.Id)
	s.Equal(api.OrderStatusProduction, body.Status)
	s.Equal(40.0, body.Price)
	s.Nil(body.FinishedAt)
	s.createOrder.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestCreateOrder_MissingCustomer_RejectedBySchema() {
	rec := s.do(http.MethodPost, "/api/v1/orders", s.staffToken, `{"lineItems": [], "price": 10}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(s.decodeError(rec).Message, "request body")
	s.createOrder.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestCreateOrder_PlaceholderCustomer_BadRequest() {
	rec := s.do(http.MethodPost, "/api/v1/orders", s.staffToken, newOrderBody("Nenhum"))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(s.decodeError(rec).Message, commands.ErrInvalidRequest.Error())
	s.createOrder.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestCreateOrder_UnexpectedError_HidesDetails() {
	s.createOrder.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders", s.staffToken, newOrderBody("Maria"))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(http.StatusText(http.StatusInternalServerError), s.decodeError(rec).Message)
}

func (s *RouterTestSuite) TestGetOrders_StatusFilter() {
	stored := s.storedOrder(order.Sending, nil)
	row := queries.ListOrdersQueryResponse{
		ID: stored.ID(),
		Customer: queries.OrderCustomer{
			ID:          stored.Customer().ID(),
			Name:        "Maria",
			DeliveryTax: decimal.NewFromInt(6),
		},
		LineItems: []queries.OrderLineItem{{ProductID: kernel.NewUUID(), Quantity: 1}},
		Price:     decimal.NewFromInt(40),
		Status:    order.Sending,
		CreatedAt: now,
	}
	s.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Status() != nil && *q.Status() == order.Sending
	})).Return([]queries.ListOrdersQueryResponse{row}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders?status=sending", s.staffToken, "")

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var body []api.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body, 1)
	s.Equal(api.OrderStatusSending, body[0].Status)
	s.Nil(body[0].Customer.Phone)
	s.listOrders.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestGetOrders_NoFilter() {
	s.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Status() == nil
	})).Return([]queries.ListOrdersQueryResponse{}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders", s.staffToken, "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *RouterTestSuite) TestGetOrders_UnknownStatus_BadRequest() {
	rec := s.do(http.MethodGet, "/api/v1/orders?status=lost", s.staffToken, "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(s.decodeError(rec).Message, `parameter "status"`)
	s.listOrders.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestChangeOrderStatus_Finished() {
	deliveryman := kernel.NewUUID()
	finished := s.storedOrder(order.Finished, &deliveryman)
	s.transition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
		return cmd.OrderID().IsEqual(finished.ID()) &&
			cmd.Target() == order.Finished &&
			cmd.DeliverymanID() != nil && cmd.DeliverymanID().IsEqual(deliveryman) &&
			cmd.FeeSnapshot() != nil && cmd.FeeSnapshot().Equal(decimal.NewFromInt(6))
	})).Return(finished, nil).Once()

	body := fmt.Sprintf(`{"status": "finished", "deliverymanId": %q, "deliveryTax": 6}`, deliveryman.String())
	rec := s.do(http.MethodPatch, "/api/v1/orders/"+finished.ID().String()+"/status", s.staffToken, body)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var got api.Order
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(api.OrderStatusFinished, got.Status)
	s.Require().NotNil(got.DeliverymanId)
	s.Equal(deliveryman.Google(), *got.DeliverymanId)
	s.Require().NotNil(got.FinishedAt)
	s.transition.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestChangeOrderStatus_ErrorMapping() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: %w", commands.ErrOrderNotFound, errs.NewObjectNotFoundError("order", "x")), http.StatusNotFound},
		{"transition not allowed", fmt.Errorf("%w: sending -> production", order.ErrTransitionNotAllowed), http.StatusConflict},
		{"already finished", order.ErrAlreadyFinished, http.StatusConflict},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.transition.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := s.do(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", s.staffToken,
				`{"status": "finished"}`)

			s.Equal(tt.want, rec.Code)
			s.Equal(tt.want, s.decodeError(rec).Code)
		})
	}
}

func (s *RouterTestSuite) TestChangeOrderStatus_InvalidOrderID_BadRequest() {
	rec := s.do(http.MethodPatch, "/api/v1/orders/not-a-uuid/status", s.staffToken, `{"status": "sending"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.transition.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestChangeOrderStatus_OwnerOnly_ForbidsEmployee() {
	s.policy = authz.Policy{TransitionOwnerOnly: true}

	rec := s.do(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", s.staffToken,
		`{"status": "sending"}`)

	s.Equal(http.StatusForbidden, rec.Code)
	s.transition.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestChangeOrderStatus_OwnerOnly_AllowsOwner() {
	s.policy = authz.Policy{TransitionOwnerOnly: true}
	sending := s.storedOrder(order.Sending, nil)
	s.transition.On("Handle", mock.Anything, mock.Anything).Return(sending, nil).Once()

	rec := s.do(http.MethodPatch, "/api/v1/orders/"+sending.ID().String()+"/status", s.ownerToken,
		`{"status": "sending"}`)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestGetDiscounts() {
	id := kernel.NewUUID()
	s.discounts.On("Handle", mock.Anything, mock.Anything).Return([]queries.ListValidDiscountsQueryResponse{{
		ID:         id,
		Name:       "PROMO10",
		ExpireDate: now.Add(24 * time.Hour),
		Value:      decimal.NewFromInt(10),
		Type:       "percentage",
		Partner:    "Acme",
		TotalUse:   3,
	}}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/discounts", s.staffToken, "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var body []api.Discount
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body, 1)
	s.Equal(id.Google(), body[0].Id)
	s.Equal(10.0, body[0].Value)
	s.Require().NotNil(body[0].Partner)
	s.Equal("Acme", *body[0].Partner)
}

func (s *RouterTestSuite) TestResetDeliverymenWeek() {
	s.resetWeek.On("Handle", mock.Anything, mock.Anything).Return(int64(3), nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/deliverymen/week/reset", s.staffToken, "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"reset": 3, "message": "Expediente finalizado"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestResetDeliverymenWeek_OwnerOnly_ForbidsEmployee() {
	s.policy = authz.Policy{ResetOwnerOnly: true}

	rec := s.do(http.MethodPost, "/api/v1/deliverymen/week/reset", s.staffToken, "")

	s.Equal(http.StatusForbidden, rec.Code)
	s.resetWeek.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
