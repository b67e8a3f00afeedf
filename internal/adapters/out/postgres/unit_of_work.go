// Package postgres provides the GORM-based Unit of Work.
//
// A unit of work hands out repositories bound to its transaction (or to the
// plain connection before Begin) and tracks every aggregate written through
// them. On Commit the domain events of the tracked aggregates are stored in
// the outbox table inside the same transaction; after a successful commit the
// aggregates are marked persisted and their events cleared.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// A unit of work may be reused after Commit or Rollback: Begin opens a new
// transaction and tracking starts from scratch.
//
// Each UnitOfWork instance is meant for one goroutine.
package postgres

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/postgres/deliveryrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]ddd.PersistentAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the outbox writes
// for the aggregates changed in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []ddd.PersistentAggregate
}

// Begin opens a transaction. Calling Begin with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit writes the pending domain events to the outbox and commits.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	events := make([]ddd.Event, 0)
	for _, aggregate := range uow.trackedAggregates {
		events = append(events, aggregate.DomainEvents()...)
	}
	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, events...); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, aggregate := range uow.trackedAggregates {
		aggregate.MarkPersisted()
		aggregate.ClearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction. Tracked aggregates keep their events.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open, which makes a
// deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written by a repository. An aggregate
// tracked twice in one transaction contributes its events once.
func (uow *GormUnitOfWork) TrackAggregate(aggregate ddd.PersistentAggregate) {
	for _, tracked := range uow.trackedAggregates {
		if tracked == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
