package settlement_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/deliveryman"
	"orderflow/internal/core/domain/model/discount"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
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

type MockDiscountRepository struct{ mock.Mock }

func (m *MockDiscountRepository) Add(ctx context.Context, d *discount.Discount) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDiscountRepository) Get(ctx context.Context, id kernel.UUID) (*discount.Discount, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*discount.Discount)
	return d, args.Error(1)
}

func (m *MockDiscountRepository) IncrementTotalUse(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDiscountRepository) ListValid(ctx context.Context, now time.Time) ([]*discount.Discount, error) {
	args := m.Called(ctx, now)
	d, _ := args.Get(0).([]*discount.Discount)
	return d, args.Error(1)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) BucketCredited(bucket deliveryman.BucketName) { m.Called(bucket) }
func (m *MockObserver) SoftFailure(kind string)                      { m.Called(kind) }
