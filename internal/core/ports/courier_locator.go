package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierLocator is the geo index used to pick couriers for a pickup point.
type CourierLocator interface {
	// TrackCourier records the courier's current position in the index.
	TrackCourier(ctx context.Context, c *courier.Courier) error

	// FindCandidates returns up to limit couriers within radiusMeters of origin,
	// nearest first. An empty slice means nobody is in range.
	FindCandidates(ctx context.Context, origin kernel.Location, radiusMeters float64, limit int) ([]courier.Candidate, error)
}
