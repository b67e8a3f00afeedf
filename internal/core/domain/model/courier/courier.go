package courier

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrIDIsRequired is returned when a courier has no identity.
	ErrIDIsRequired = errs.NewValueIsRequiredError("courierId")
	// ErrNameIsRequired is returned when attempting to register a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery person known to the dispatcher.
//
// The id is the identity issued by the auth layer to a user with the
// "delivery" role, so it is kept as an opaque string rather than a UUID.
// The location is whatever the courier reported last and is replaced on
// every report.
//
// Example usage:
//
//	location, _ := kernel.NewLocation(52.52, 13.405)
//	c, err := courier.NewCourier("courier-42", "Alice", location)
//	if err != nil {
//	    // Handle construction error
//	}
type Courier struct {
	id        string
	name      string
	location  kernel.Location
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// NewCourier registers a courier at its first reported location.
func NewCourier(id string, name string, location kernel.Location) (*Courier, error) {
	c := &Courier{
		updatedAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage.
func RestoreCourier(id string, name string, location kernel.Location, updatedAt time.Time) (*Courier, error) {
	c := &Courier{
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id == other.id
}

// Validate checks that the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() string {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) Location() kernel.Location {
	return c.location
}

func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

// Rename changes the display name reported by the courier app.
func (c *Courier) Rename(name string) error {
	return c.setName(name)
}

// ReportLocation replaces the courier's position.
func (c *Courier) ReportLocation(location kernel.Location) error {
	if err := c.setLocation(location); err != nil {
		return err
	}
	c.updatedAt = time.Now().UTC()
	return nil
}

// DistanceTo returns the great-circle distance in meters from the courier to target.
func (c *Courier) DistanceTo(target kernel.Location) (float64, error) {
	return c.location.DistanceTo(target)
}

func (c *Courier) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDIsRequired
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
