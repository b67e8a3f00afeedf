package postgres

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/postgres/deliveryrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of every repository.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&paymentrepo.PaymentDTO{},
		&courierrepo.CourierDTO{},
		&outboxrepo.OutboxMessageDTO{},
	)
}
