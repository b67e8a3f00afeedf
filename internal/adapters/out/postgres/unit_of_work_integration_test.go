package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite checks transaction boundaries and outbox
// writes of the GORM unit of work against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.PaymentRepository())
	suite.NotNil(uow1.CourierRepository())
	suite.NotNil(uow1.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesDomainEventsToOutboxAndClearsThem() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(o.DomainEvents())
	messages := suite.unprocessed()
	suite.Require().Len(messages, 1)
	suite.Equal(order.EventOrderCreated, messages[0].Name)
	suite.Equal(o.ID().String(), messages[0].AggregateID)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_AggregateSavedTwice_WritesEventsOnce() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(o.AssignCourier("courier-1"))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	names := make([]string, 0)
	for _, m := range suite.unprocessed() {
		names = append(names, m.Name)
	}
	suite.ElementsMatch([]string{
		order.EventOrderCreated,
		order.EventOrderCourierAssigned,
		order.EventOrderStatusChanged,
	}, names)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAggregatesAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Empty(suite.unprocessed())
	suite.NotEmpty(o.DomainEvents(), "Events stay on the aggregate after a rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_AssignmentAcrossRepositoriesIsAtomic() {
	ctx := context.Background()
	o := suite.newOrder()
	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))

	suite.Run("assignment commits order and delivery together", func() {
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		loaded, err := uow.OrderRepository().Get(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(loaded.AssignCourier("courier-1"))
		suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
		suite.Require().NoError(uow.DeliveryRepository().Add(ctx, suite.newDelivery(o.ID(), "courier-1")))
		suite.Require().NoError(uow.Commit(ctx))

		d, err := suite.factory.Create().DeliveryRepository().GetByOrderID(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Equal("courier-1", d.DeliveryPersonID())
	})

	suite.Run("losing assignment leaves nothing behind", func() {
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		err := uow.DeliveryRepository().Add(ctx, suite.newDelivery(o.ID(), "courier-2"))
		suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
		suite.Require().NoError(uow.Rollback(ctx))

		d, err := suite.factory.Create().DeliveryRepository().GetByOrderID(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Equal("courier-1", d.DeliveryPersonID())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReusableAfterCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()

	first := suite.newOrder()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, first))
	suite.Require().NoError(uow.Commit(ctx))

	second := suite.newOrder()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, second))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Len(suite.unprocessed(), 2, "The first order's event must not be written twice")
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewItem("ramen", "Ramen", 2, decimal.RequireFromString("11.75"))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "restaurant-1",
		[]order.Item{item}, "Main st 1", order.PaymentMethodCash)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newDelivery(orderID kernel.UUID, courierID string) *delivery.Delivery {
	pickup, err := kernel.NewLocation(52.52, 13.405)
	suite.Require().NoError(err)
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, courierID, pickup)
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) unprocessed() []ports.OutboxMessage {
	messages, err := outboxrepo.NewGormOutboxRepository(suite.db).GetUnprocessed(context.Background(), 100)
	suite.Require().NoError(err)
	return messages
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
