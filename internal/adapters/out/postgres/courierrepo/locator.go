package courierrepo

import (
	"context"
	"math"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"

	"gorm.io/gorm"
)

// metersPerDegreeLatitude follows the sphere used for exact distances so the
// SQL box never cuts a courier the matcher would keep.
const metersPerDegreeLatitude = kernel.EarthRadiusMeters * math.Pi / 180

// boxMargin widens the bounding box to cover the great circle bulge at the
// east and west edges.
const boxMargin = 1.01

// GormCourierLocator answers candidate searches from the couriers table. It is
// used when no Redis geo index is configured. Rows are prefiltered with a
// bounding box in SQL; exact distances, the radius cut and the ordering come
// from GeoDriverMatcher.
type GormCourierLocator struct {
	db      *gorm.DB
	matcher services.GeoDriverMatcher
}

func NewGormCourierLocator(db *gorm.DB) *GormCourierLocator {
	return &GormCourierLocator{
		db:      db,
		matcher: services.NewGeoDriverMatcher(),
	}
}

// TrackCourier is a no-op: the position is already in the couriers table.
func (l *GormCourierLocator) TrackCourier(_ context.Context, _ *courier.Courier) error {
	return nil
}

func (l *GormCourierLocator) FindCandidates(
	ctx context.Context,
	origin kernel.Location,
	radiusMeters float64,
	limit int,
) ([]courier.Candidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	latDelta := radiusMeters / metersPerDegreeLatitude * boxMargin
	query := l.db.WithContext(ctx).
		Where("location_latitude BETWEEN ? AND ?", origin.Latitude()-latDelta, origin.Latitude()+latDelta)

	// Near the poles and the antimeridian the longitude window degenerates; scan all longitudes there.
	cosLat := math.Cos(origin.Latitude() * math.Pi / 180)
	if cosLat > 0.01 {
		lngDelta := latDelta / cosLat
		minLng, maxLng := origin.Longitude()-lngDelta, origin.Longitude()+lngDelta
		if minLng >= kernel.MinLongitude && maxLng <= kernel.MaxLongitude {
			query = query.Where("location_longitude BETWEEN ? AND ?", minLng, maxLng)
		}
	}

	var dtos []CourierDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return l.matcher.FindCandidates(origin, couriers, radiusMeters, limit)
}
