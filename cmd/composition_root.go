package cmd

import (
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/notification"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/redisgeo"
	"fooddelivery/internal/adapters/out/restaurant"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locator    ports.CourierLocator
	catalog    ports.RestaurantCatalog
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. rdb may be nil, in which case
// couriers are matched with a PostgreSQL query. publisher may be nil, in
// which case the outbox is not published.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	rdb redis.Cmdable,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	var locator ports.CourierLocator = courierrepo.NewGormCourierLocator(gormDB)
	if rdb != nil {
		locator = redisgeo.NewCourierLocator(rdb, redisgeo.DefaultKey)
	}

	var notifier ports.Notifier
	if cfg.NotificationServiceURL != "" {
		notifier = notification.NewClient(cfg.NotificationServiceURL, cfg.CollaboratorTimeout)
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locator:    locator,
		catalog:    restaurant.NewClient(cfg.RestaurantServiceURL, cfg.CollaboratorTimeout),
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.deliveryUoWFactory(), c.catalog, c.locator, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.catalog, c.CreateAssignCourierCommandHandler(), c.notifier, c.logger,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(), c.CreateAssignCourierCommandHandler(), c.notifier, c.logger,
	)
}

func (c *CompositionRoot) CreateChangeDeliveryStatusCommandHandler() commands.ChangeDeliveryStatusCommandHandler {
	return commands.NewChangeDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.deliveryUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryLocationCommandHandler() commands.UpdateDeliveryLocationCommandHandler {
	return commands.NewUpdateDeliveryLocationCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierLocationCommandHandler(f, c.locator, c.logger)
}

func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	return commands.NewCreatePaymentCommandHandler(c.paymentUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateHandlePaymentWebhookCommandHandler() commands.HandlePaymentWebhookCommandHandler {
	verifier := services.NewWebhookSignatureVerifier(c.cfg.PaymentWebhookSecret, c.cfg.PaymentWebhookTolerance)
	return commands.NewHandlePaymentWebhookCommandHandler(c.paymentUoWFactory(), verifier, c.notifier, c.logger)
}

func (c *CompositionRoot) CreatePublishOutboxEventsCommandHandler() commands.PublishOutboxEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxEventsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRetryPendingAssignmentsCommandHandler() commands.RetryPendingAssignmentsCommandHandler {
	return commands.NewRetryPendingAssignmentsCommandHandler(
		c.orderUoWFactory(), c.CreateAssignCourierCommandHandler(), c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects the use cases served by the REST adapter.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:      c.CreateChangeOrderStatusCommandHandler(),
		AssignCourier:          c.CreateAssignCourierCommandHandler(),
		CreatePayment:          c.CreateCreatePaymentCommandHandler(),
		ChangeDeliveryStatus:   c.CreateChangeDeliveryStatusCommandHandler(),
		AcceptDelivery:         c.CreateAcceptDeliveryCommandHandler(),
		UpdateDeliveryLocation: c.CreateUpdateDeliveryLocationCommandHandler(),
		UpdateCourierLocation:  c.CreateUpdateCourierLocationCommandHandler(),
		PaymentWebhook:         c.CreateHandlePaymentWebhookCommandHandler(),
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetDelivery:            c.CreateGetDeliveryQueryHandler(),
	}
}

// CreateJobs returns the scheduled jobs enabled by the configuration.
func (c *CompositionRoot) CreateJobs() []jobs.Job {
	var scheduled []jobs.Job
	if c.publisher != nil {
		scheduled = append(scheduled, jobs.NewOutboxPublisherJob(
			c.CreatePublishOutboxEventsCommandHandler(), c.cfg.OutboxSchedule, c.cfg.OutboxBatchSize, c.logger,
		))
	} else {
		c.logger.Warn("no event log brokers configured, outbox messages are kept unpublished")
	}
	if c.cfg.AssignmentRetryEnabled {
		scheduled = append(scheduled, jobs.NewAssignmentRetryJob(
			c.CreateRetryPendingAssignmentsCommandHandler(), c.cfg.AssignmentRetrySchedule, c.cfg.AssignmentRetryLimit, c.logger,
		))
	}
	return scheduled
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
