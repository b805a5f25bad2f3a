package cmd

import (
	"log/slog"
	"net/http"
	"time"

	httpin "handover/internal/adapters/in/http"
	"handover/internal/adapters/out/notifier"
	"handover/internal/adapters/out/personnel"
	"handover/internal/adapters/out/postgres"
	"handover/internal/core/application/usecases/commands"
	"handover/internal/core/application/usecases/queries"
	"handover/internal/core/domain/services"
	"handover/internal/core/ports"
	"handover/internal/jobs"
	"handover/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	directory  ports.PersonnelDirectory
	notifier   ports.NotificationHook
	metrics    *metrics.Metrics
	logger     *slog.Logger
	config     Config
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var directory ports.PersonnelDirectory
	if config.PersonnelServiceURL != "" {
		directory = personnel.NewRetryingDirectory(
			personnel.NewHTTPDirectory(config.PersonnelServiceURL, &http.Client{Timeout: 5 * time.Second}),
			logger,
			personnel.RetryConfig{
				MaxAttempts: 3,
				BaseDelay:   100 * time.Millisecond,
				MaxDelay:    2 * time.Second,
			},
		)
	} else {
		directory = personnel.NewStaticDirectory(nil)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:  directory,
		notifier:   notifier.NewSlogNotificationHook(logger),
		metrics:    metrics.NewMetrics(config.MetricsNamespace),
		logger:     logger,
		config:     config,
	}
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.deliveryUoWFactory(), c.directory, c.notifier)
}

func (c *CompositionRoot) CreateTransitionDeliveryCommandHandler() commands.TransitionDeliveryCommandHandler {
	return commands.NewTransitionDeliveryCommandHandler(
		c.deliveryUoWFactory(),
		services.NewHandoverVerifier(),
		c.notifier,
	)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCourierDeliveriesQueryHandler() queries.ListCourierDeliveriesQueryHandler {
	return queries.NewListCourierDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStaleDeliveriesQueryHandler() queries.ListStaleDeliveriesQueryHandler {
	return queries.NewListStaleDeliveriesQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every command and query handler into the inbound
// HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateTransitionDeliveryCommandHandler(),
		c.CreateGetDeliveryQueryHandler(),
		c.CreateListDeliveriesQueryHandler(),
		c.CreateListCourierDeliveriesQueryHandler(),
		c.metrics,
	)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListStaleDeliveriesQueryHandler(),
		c.notifier,
		c.config.StaleThreshold,
		c.logger,
	)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
