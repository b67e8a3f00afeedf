package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// Add persists a new payment. Order id and provider reference are unique.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update writes the new status only if the stored status is still one of the
	// predecessors of the new status. Returns errs.ErrConcurrentModification when
	// no row matched.
	Update(ctx context.Context, aggregate *payment.Payment) error

	GetByProviderReference(ctx context.Context, providerReference string) (*payment.Payment, error)

	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
