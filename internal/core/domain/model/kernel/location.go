package kernel

import (
	"errors"
	"fmt"
	"math"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
	EarthRadiusMeters = 6371008.8
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation")

// Location is a WGS84 point. Restaurants, couriers and deliveries are placed with it.
//
// Example:
//
//	loc, err := kernel.NewLocation(55.7558, 37.6173)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Location(55.755800,37.617300)
type Location struct { //nolint:recvcheck //pointer setters are used during construction only
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation validates latitude in [-90, 90] and longitude in [-180, 180].
func NewLocation(latitude float64, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewLocationFromCoordinates accepts the GeoJSON order [longitude, latitude].
func NewLocationFromCoordinates(coordinates []float64) (Location, error) {
	if len(coordinates) != 2 {
		return Location{}, errs.NewValueIsInvalidErrorWithCause(
			"coordinates",
			fmt.Errorf("expected [longitude, latitude], got %d values", len(coordinates)),
		)
	}
	return NewLocation(coordinates[1], coordinates[0])
}

// Validate fails for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// Coordinates returns the GeoJSON pair [longitude, latitude].
func (l Location) Coordinates() []float64 {
	return []float64{l.longitude, l.latitude}
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceTo returns the great-circle (haversine) distance in meters.
//
// Example:
//
//	a, _ := kernel.NewLocation(0, 0)
//	b, _ := kernel.NewLocation(0, 1)
//	d, _ := a.DistanceTo(b) // ~111195 m
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degreesToRadians(l.latitude)
	lat2 := degreesToRadians(other.latitude)
	dLat := lat2 - lat1
	dLng := degreesToRadians(other.longitude - l.longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = longitude
	return nil
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
