package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/kafka"
	"pizzeria/internal/adapters/out/notification"
	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/adapters/out/postgres/directoryrepo"
	"pizzeria/internal/adapters/out/postgres/zonerepo"
	"pizzeria/internal/adapters/out/zonecache"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/jobs"
	"pizzeria/internal/pkg/metrics"
	"pizzeria/internal/realtime"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Process-wide singletons
// (hub, zone cache, notifier, metrics) are built once here; handlers are
// built on demand.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	metrics   *metrics.Metrics
	hub       *realtime.Hub
	zoneCache *zonecache.Cache
	notifier  ports.OrderNotifier
	auth      *httpin.Authenticator
	producer  *kafka.OrderEventsProducer
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	m := metrics.New()
	hub := realtime.NewHub(logger, realtime.WithSubscriberGauge(m.Subscribers))

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		metrics:    m,
		hub:        hub,
		zoneCache: zonecache.New(zonerepo.NewGormZoneRepository(gormDB), configs.ZoneCacheTTL, logger,
			zonecache.WithLookupCounter(m.ZoneCache)),
		auth: httpin.NewAuthenticator(configs.JWTSecret),
	}

	opts := []notification.Option{notification.WithCounter(m.Notifications)}
	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		c.producer = kafka.NewOrderEventsProducer(brokers, configs.KafkaOrderChangedTopic, logger)
		opts = append(opts, notification.WithMirror(c.producer))
		logger.Info("order events mirrored to kafka", "brokers", brokers, "topic", configs.KafkaOrderChangedTopic)
	}
	c.notifier = newCountingNotifier(notification.NewDispatcher(hub, logger, opts...), m)

	return c
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	fees, err := commands.NewFlatDeliveryFee(c.configs.DeliveryFee)
	if err != nil {
		// Config.Validate rejects negative fees before we get here.
		panic(err)
	}
	return commands.NewCreateOrderCommandHandler(
		f, catalogrepo.NewGormCatalogRepository(c.gormDB), fees, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(
		f, c.CreateCourierAssigner(), directoryrepo.NewGormDirectory(c.gormDB), c.notifier, c.logger)
}

// CreateCourierAssigner returns the assignment handler with its outcomes
// counted.
func (c *CompositionRoot) CreateCourierAssigner() commands.CourierAssigner {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewAssignCourierCommandHandler(f, commands.NewZoneLocator(c.zoneCache), c.logger)
	return instrumentedAssigner{next: handler, outcomes: c.metrics.Assignments}
}

func (c *CompositionRoot) CreateAssignCourierToZoneCommandHandler() commands.AssignCourierToZoneCommandHandler {
	var f commands.ZoneUoWFactory = FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierToZoneCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateClearZoneCacheCommandHandler() commands.ClearZoneCacheCommandHandler {
	return commands.NewClearZoneCacheCommandHandler(c.zoneCache, c.logger)
}

func (c *CompositionRoot) CreateGetClientOrdersQueryHandler() queries.GetClientOrdersQueryHandler {
	return queries.NewGetClientOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchOrdersQueryHandler() queries.GetBranchOrdersQueryHandler {
	return queries.NewGetBranchOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchStatsQueryHandler() queries.GetBranchStatsQueryHandler {
	return queries.NewGetBranchStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchCouriersQueryHandler() queries.GetBranchCouriersQueryHandler {
	return queries.NewGetBranchCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierOrdersQueryHandler() queries.GetCourierOrdersQueryHandler {
	return queries.NewGetCourierOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedDispatchedOrdersQueryHandler() queries.GetUnassignedDispatchedOrdersQueryHandler {
	return queries.NewGetUnassignedDispatchedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateCourierAssigner(),
		c.CreateAssignCourierToZoneCommandHandler(),
		c.CreateClearZoneCacheCommandHandler(),
		c.CreateGetClientOrdersQueryHandler(),
		c.CreateGetBranchOrdersQueryHandler(),
		c.CreateGetBranchStatsQueryHandler(),
		c.CreateGetBranchCouriersQueryHandler(),
		c.CreateGetCourierOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	return httpin.NewRouter(
		ctx,
		c.CreateServer(),
		httpin.NewWebsocketHandler(c.hub, c.auth, c.logger),
		c.auth,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewDispatchRetryJob(
			c.CreateGetUnassignedDispatchedOrdersQueryHandler(),
			c.CreateCourierAssigner(),
			c.configs.DispatchRetrySchedule,
			jobs.DefaultDispatchRetryBatch,
			c.logger,
		),
		jobs.NewZoneCachePurgeJob(c.zoneCache, c.configs.ZoneCachePurgeSchedule, c.logger),
	)
}

// Close releases connections owned by the root.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	if c.producer != nil {
		closeErrs = append(closeErrs, c.producer.Close())
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		closeErrs = append(closeErrs, sqlDB.Close())
	} else {
		closeErrs = append(closeErrs, err)
	}
	return errors.Join(closeErrs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}
