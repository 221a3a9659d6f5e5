package commands_test

import (
	"context"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/deliveryman"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDeliverymanRepository struct{ mock.Mock }

func (m *MockDeliverymanRepository) Add(ctx context.Context, d *deliveryman.Deliveryman) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliverymanRepository) Get(ctx context.Context, id kernel.UUID) (*deliveryman.Deliveryman, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*deliveryman.Deliveryman)
	return d, args.Error(1)
}

func (m *MockDeliverymanRepository) CreditBucket(ctx context.Context, id kernel.UUID, inc deliveryman.BucketIncrement) error {
	return m.Called(ctx, id, inc).Error(0)
}

func (m *MockDeliverymanRepository) ResetWeeklyViews(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, events ...kernel.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]ports.OutboxMessage)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

// MockUoW implements every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliverymanRepository() ports.DeliverymanRepository {
	return m.Called().Get(0).(ports.DeliverymanRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) orders() commands.OrderUoWFactory            { return orderUoWFactory(f) }
func (f uowFactory) transitions() commands.TransitionUoWFactory  { return transitionUoWFactory(f) }
func (f uowFactory) deliverymen() commands.DeliverymanUoWFactory { return deliverymanUoWFactory(f) }
func (f uowFactory) outbox() commands.OutboxUoWFactory           { return outboxUoWFactory(f) }

type (
	orderUoWFactory       uowFactory
	transitionUoWFactory  uowFactory
	deliverymanUoWFactory uowFactory
	outboxUoWFactory      uowFactory
)

func (f orderUoWFactory) Create() commands.OrderUoW             { return f.uow }
func (f transitionUoWFactory) Create() commands.TransitionUoW   { return f.uow }
func (f deliverymanUoWFactory) Create() commands.DeliverymanUoW { return f.uow }
func (f outboxUoWFactory) Create() commands.OutboxUoW           { return f.uow }

type MockStatsAggregator struct{ mock.Mock }

func (m *MockStatsAggregator) ApplyCompletion(
	ctx context.Context,
	deliverymanID kernel.UUID,
	fee decimal.Decimal,
) (*deliveryman.Deliveryman, error) {
	args := m.Called(ctx, deliverymanID, fee)
	d, _ := args.Get(0).(*deliveryman.Deliveryman)
	return d, args.Error(1)
}

func (m *MockStatsAggregator) ResetWeeklyCounters(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// aggregatorFactory hands out the same aggregator and records the repository
// it was bound to.
type aggregatorFactory struct {
	aggregator *MockStatsAggregator
	boundTo    []ports.DeliverymanRepository
}

func (f *aggregatorFactory) Create(repo ports.DeliverymanRepository) commands.StatsAggregator {
	f.boundTo = append(f.boundTo, repo)
	return f.aggregator
}

type MockUsageRecorder struct{ mock.Mock }

func (m *MockUsageRecorder) IncrementUsage(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, msgs ...ports.OutboxMessage) error {
	return m.Called(ctx, msgs).Error(0)
}

var fixedNow = time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
