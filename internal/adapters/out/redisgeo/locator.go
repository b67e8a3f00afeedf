// Package redisgeo keeps courier positions in a Redis GEO set and answers
// nearest-courier searches with GEORADIUS.
package redisgeo

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// DefaultKey is the GEO set holding courier positions.
const DefaultKey = "couriers:locations"

// CourierLocator implements ports.CourierLocator on top of a Redis GEO set.
// Members are courier ids.
type CourierLocator struct {
	rdb redis.Cmdable
	key string
}

func NewCourierLocator(rdb redis.Cmdable, key string) *CourierLocator {
	if key == "" {
		key = DefaultKey
	}
	return &CourierLocator{rdb: rdb, key: key}
}

// TrackCourier replaces the courier's position in the set.
func (l *CourierLocator) TrackCourier(ctx context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}

	err := l.rdb.GeoAdd(ctx, l.key, &redis.GeoLocation{
		Name:      c.ID(),
		Longitude: c.Location().Longitude(),
		Latitude:  c.Location().Latitude(),
	}).Err()
	if err != nil {
		return fmt.Errorf("geoadd courier %s: %w", c.ID(), err)
	}
	return nil
}

// FindCandidates returns up to limit couriers within radiusMeters, nearest first.
func (l *CourierLocator) FindCandidates(
	ctx context.Context,
	origin kernel.Location,
	radiusMeters float64,
	limit int,
) ([]courier.Candidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("radius", fmt.Errorf("%v is not greater than 0", radiusMeters))
	}
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is not greater than 0", limit))
	}

	locations, err := l.rdb.GeoRadius(ctx, l.key, origin.Longitude(), origin.Latitude(), &redis.GeoRadiusQuery{
		Radius:   radiusMeters,
		Unit:     "m",
		WithDist: true,
		Count:    limit,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("georadius: %w", err)
	}

	candidates := make([]courier.Candidate, 0, len(locations))
	for _, loc := range locations {
		candidates = append(candidates, courier.Candidate{
			CourierID:      loc.Name,
			DistanceMeters: loc.Dist,
		})
	}
	services.SortCandidates(candidates)

	return candidates, nil
}
