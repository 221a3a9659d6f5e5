package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/discountrepo"
	"orderflow/internal/core/application/authz"
	"orderflow/internal/core/application/settlement"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	ledger     *settlement.DiscountLedger
	publisher  ports.EventPublisher
	closer     func() error
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewCompositionRoot publishes outbox messages to Kafka when KafkaHost is set
// and to the log otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	m := metrics.New()
	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:     settlement.NewDiscountLedger(discountrepo.NewGormDiscountRepository(gormDB), logger, m),
		closer:     func() error { return nil },
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}

	if cfg.KafkaHost == "" {
		root.publisher = kafka.NewLogPublisher(logger)
		return root, nil
	}

	writer, err := kafka.NewWriter(kafka.ParseBrokers(cfg.KafkaHost), cfg.KafkaOrderChangedTopic)
	if err != nil {
		return nil, fmt.Errorf("kafka writer: %w", err)
	}
	publisher := kafka.NewPublisher(writer, cfg.KafkaOrderChangedTopic, logger)
	root.publisher = publisher
	root.closer = publisher.Close
	return root, nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateStatsAggregatorFactory() commands.StatsAggregatorFactory {
	return FuncStatsAggregatorFactory(func(repo ports.DeliverymanRepository) commands.StatsAggregator {
		return settlement.NewDeliverymanStatsAggregator(repo, c.logger, c.metrics)
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.ledger, c.now, c.logger)
	return &h
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() *commands.TransitionOrderCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewTransitionOrderCommandHandler(f, c.CreateStatsAggregatorFactory(), c.now, c.logger)
	return &h
}

func (c *CompositionRoot) CreateResetDeliverymenWeekCommandHandler() *commands.ResetDeliverymenWeekCommandHandler {
	var f commands.DeliverymanUoWFactory = FuncDeliverymanUoWFactory(func() commands.DeliverymanUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewResetDeliverymenWeekCommandHandler(f, c.CreateStatsAggregatorFactory())
	return &h
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() *commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRelayOutboxCommandHandler(f, c.publisher, c.now)
	return &h
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListValidDiscountsQueryHandler() queries.ListValidDiscountsQueryHandler {
	return queries.NewListValidDiscountsQueryHandler(c.ledger, c.now)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		TransitionOrder:    c.CreateTransitionOrderCommandHandler(),
		ResetWeek:          c.CreateResetDeliverymenWeekCommandHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		ListValidDiscounts: c.CreateListValidDiscountsQueryHandler(),
	}, authz.Policy{
		TransitionOwnerOnly: c.cfg.OrderTransitionOwnerOnly,
		ResetOwnerOnly:      c.cfg.WeekResetOwnerOnly,
	}, c.logger)

	return httpin.NewRouter(httpin.RouterConfig{
		Server:         server,
		Verifier:       httpin.NewTokenVerifier(c.cfg.JWTSecret),
		Observer:       c.metrics,
		MetricsHandler: c.metrics.Handler(),
		Logger:         c.logger,
		RequestTimeout: c.cfg.RequestTimeout,
	})
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay, err := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(),
		c.cfg.OutboxBatchSize,
		c.cfg.OutboxRelaySchedule,
		c.metrics,
		c.logger,
	)
	if err != nil {
		return nil, err
	}

	var reset *jobs.WeeklyResetJob
	if c.cfg.WeeklyResetEnabled() {
		reset = jobs.NewWeeklyResetJob(c.CreateResetDeliverymenWeekCommandHandler(), c.cfg.WeekResetSchedule, c.logger)
	}
	return jobs.NewJobManager(relay, reset), nil
}

// Close releases the event publisher.
func (c *CompositionRoot) Close() error {
	return c.closer()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncDeliverymanUoWFactory func() commands.DeliverymanUoW

func (f FuncDeliverymanUoWFactory) Create() commands.DeliverymanUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncStatsAggregatorFactory func(repo ports.DeliverymanRepository) commands.StatsAggregator

func (f FuncStatsAggregatorFactory) Create(repo ports.DeliverymanRepository) commands.StatsAggregator {
	return f(repo)
}
