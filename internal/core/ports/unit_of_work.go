package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained before Begin read outside of any transaction; those
// obtained after Begin share it. Commit also writes the domain events raised by
// every aggregate saved through the unit of work into the outbox.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DeliveryRepository() DeliveryRepository
	PaymentRepository() PaymentRepository
	CourierRepository() CourierRepository
	OutboxRepository() OutboxRepository
}
