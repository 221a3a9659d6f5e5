package outboxrepo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/outboxrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.Require().NoError(pg.AutoMigrate())
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.pg.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_NoEvents_NoOp() {
	suite.Require().NoError(suite.repository.Add(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAddAndFetchPending() {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	created := order.CreatedEvent{
		ID:         kernel.NewUUID(),
		OrderID:    kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		Price:      decimal.NewFromInt(30),
		At:         base,
	}
	finished := suite.finishedEvent(created.OrderID, base.Add(time.Minute))

	suite.Require().NoError(suite.repository.Add(ctx, finished, created))

	pending, err := suite.repository.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)

	suite.True(pending[0].ID.IsEqual(created.ID), "ordered by occurrence")
	suite.Equal(order.CreatedEventName, pending[0].Name)
	suite.Empty(pending[0].DedupKey)

	suite.Equal(order.FinishedEventName, pending[1].Name)
	suite.Equal(order.FinishedDedupKey(created.OrderID), pending[1].DedupKey)
	suite.True(pending[1].AggregateID.IsEqual(created.OrderID))

	var payload map[string]any
	suite.Require().NoError(json.Unmarshal(pending[1].Payload, &payload))
	suite.Equal("finished", payload["to"])
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestFetchPending_RespectsLimit() {
	ctx := context.Background()
	now := time.Now().UTC()
	for i := range 3 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.finishedEvent(kernel.NewUUID(), now.Add(time.Duration(i)*time.Second))))
	}

	pending, err := suite.repository.FetchPending(ctx, 2)

	suite.Require().NoError(err)
	suite.Len(pending, 2)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_DuplicateDedupKey() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, suite.finishedEvent(orderID, time.Now())))

	err := suite.repository.Add(ctx, suite.finishedEvent(orderID, time.Now()))

	suite.Require().ErrorIs(err, ports.ErrDuplicateEvent)
	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&outboxrepo.OutboxDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkSent_HidesMessages() {
	ctx := context.Background()
	first := suite.finishedEvent(kernel.NewUUID(), time.Now())
	second := suite.finishedEvent(kernel.NewUUID(), time.Now().Add(time.Second))
	suite.Require().NoError(suite.repository.Add(ctx, first, second))

	suite.Require().NoError(suite.repository.MarkSent(ctx, []kernel.UUID{first.ID}, time.Now()))

	pending, err := suite.repository.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID.IsEqual(second.ID))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkSent_EmptyIDs_NoOp() {
	suite.Require().NoError(suite.repository.MarkSent(context.Background(), nil, time.Now()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestFetchPending_SkipsLockedRows() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.finishedEvent(kernel.NewUUID(), time.Now())))

	err := suite.pg.DB.Transaction(func(tx *gorm.DB) error {
		locked, err := outboxrepo.NewGormOutboxRepository(tx).FetchPending(ctx, 10)
		suite.Require().NoError(err)
		suite.Require().Len(locked, 1)

		others, err := suite.repository.FetchPending(ctx, 10)
		suite.Require().NoError(err)
		suite.Empty(others, "a second relay must skip rows locked by the first")
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *OutboxRepositoryIntegrationTestSuite) finishedEvent(orderID kernel.UUID, at time.Time) order.StatusChangedEvent {
	return order.StatusChangedEvent{
		ID:      kernel.NewUUID(),
		OrderID: orderID,
		From:    order.Sending.String(),
		To:      order.Finished.String(),
		At:      at,
	}
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
