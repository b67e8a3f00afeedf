package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
)

// CourierRepository stores the last reported position of every courier.
type CourierRepository interface {
	// Save inserts or replaces the courier.
	Save(ctx context.Context, aggregate *courier.Courier) error

	Get(ctx context.Context, id string) (*courier.Courier, error)

	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
