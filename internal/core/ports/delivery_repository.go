package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery. A second live delivery for the same order is
	// rejected by the store and surfaces as errs.ErrConcurrentModification.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes, conditional on the status observed at load time.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID returns the most recent delivery of an order, or an
	// errs.ObjectNotFoundError when the order was never assigned.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}
