// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work, and outbound collaborators.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is conditional on the
	// status (and courier slot) observed when the order was loaded; if another
	// writer got there first it fails with errs.ErrConcurrentModification.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id, or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListUnassigned returns up to limit non-terminal orders without a courier,
	// oldest first. Used by the assignment retry worker.
	ListUnassigned(ctx context.Context, limit int) ([]*order.Order, error)
}
