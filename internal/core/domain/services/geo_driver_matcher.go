package services

import (
	"fmt"
	"sort"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

const (
	// DefaultSearchRadiusMeters is the radius used when assigning a courier to an order.
	DefaultSearchRadiusMeters = 10_000
	// DefaultCandidateLimit bounds the number of candidates returned for one assignment.
	DefaultCandidateLimit = 5
)

// GeoDriverMatcher is a domain service that finds couriers around a point.
//
// Key responsibilities:
//   - Filtering couriers whose last reported location is within the radius
//   - Ordering candidates by great-circle distance, nearest first
//   - Bounding the result by limit
//
// Business rules:
//   - Couriers carry no busy state, every courier in range is eligible
//   - Ties on distance are broken by courier id so the ranking is deterministic
//   - An empty result is not an error; the caller decides what "nobody nearby" means
//
// Example usage:
//
//	matcher := GeoDriverMatcher{}
//	candidates, err := matcher.FindCandidates(pickup, couriers, DefaultSearchRadiusMeters, DefaultCandidateLimit)
//	if err != nil {
//	    return err
//	}
//	if len(candidates) == 0 {
//	    // No courier nearby
//	}
type GeoDriverMatcher struct{}

// NewGeoDriverMatcher creates a new GeoDriverMatcher instance.
func NewGeoDriverMatcher() GeoDriverMatcher {
	return GeoDriverMatcher{}
}

// FindCandidates returns up to limit couriers within radiusMeters of origin,
// nearest first.
//
// Returns:
//   - []courier.Candidate: ranked candidates, empty when none is in range
//   - error: validation error for a bad origin, radius or limit, or for an unconstructed courier
func (m GeoDriverMatcher) FindCandidates(
	origin kernel.Location,
	couriers []*courier.Courier,
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

	candidates := make([]courier.Candidate, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		distance, err := c.DistanceTo(origin)
		if err != nil {
			return nil, err
		}

		if distance > radiusMeters {
			continue
		}

		candidates = append(candidates, courier.Candidate{CourierID: c.ID(), DistanceMeters: distance})
	}

	SortCandidates(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// SortCandidates orders candidates nearest first, breaking ties by courier id.
// Locators that rank on their own (redis GEORADIUS) use it to normalize tie order.
func SortCandidates(candidates []courier.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DistanceMeters != candidates[j].DistanceMeters {
			return candidates[i].DistanceMeters < candidates[j].DistanceMeters
		}
		return candidates[i].CourierID < candidates[j].CourierID
	})
}
