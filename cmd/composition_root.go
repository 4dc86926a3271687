package cmd

import (
	"log/slog"
	"time"

	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   *notifications.Dispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifications.NewDispatcher(publisher, notifications.ContextActorProvider{}, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderGroupCommandHandler() commands.CreateOrderGroupCommandHandler {
	return commands.NewCreateOrderGroupCommandHandler(c.cascadeUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAddServiceCommandHandler() commands.AddServiceCommandHandler {
	return commands.NewAddServiceCommandHandler(c.cascadeUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateChangeServiceStatusCommandHandler() commands.ChangeServiceStatusCommandHandler {
	return commands.NewChangeServiceStatusCommandHandler(c.cascadeUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRemoveServiceCommandHandler() commands.RemoveServiceCommandHandler {
	return commands.NewRemoveServiceCommandHandler(c.cascadeUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRestoreServiceCommandHandler() commands.RestoreServiceCommandHandler {
	return commands.NewRestoreServiceCommandHandler(c.cascadeUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateOverrideGroupStatusCommandHandler() commands.OverrideGroupStatusCommandHandler {
	return commands.NewOverrideGroupStatusCommandHandler(c.cascadeUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReconcileStatusesCommandHandler() commands.ReconcileStatusesCommandHandler {
	return commands.NewReconcileStatusesCommandHandler(c.cascadeUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProviderWorkQueueQueryHandler() queries.GetProviderWorkQueueQueryHandler {
	return queries.NewGetProviderWorkQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCreateOrderGroupCommandHandler(),
		c.CreateAddServiceCommandHandler(),
		c.CreateChangeServiceStatusCommandHandler(),
		c.CreateRemoveServiceCommandHandler(),
		c.CreateRestoreServiceCommandHandler(),
		c.CreateOverrideGroupStatusCommandHandler(),
		c.CreateGetOrderSummaryQueryHandler(),
		c.CreateGetProviderWorkQueueQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	window := c.config.ReconcileWindow
	if window <= 0 {
		window = time.Hour
	}
	return jobs.NewJobManager(
		c.CreateReconcileStatusesCommandHandler(),
		c.config.ReconcileCron,
		window,
		c.logger,
	)
}

func (c *CompositionRoot) cascadeUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
