// Package courierrepo stores the couriers known to the dispatcher with their
// last reported position.
package courierrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierDTO is a row of the couriers table. The id is the courier's user id.
type CourierDTO struct {
	ID        string      `gorm:"size:64;primaryKey"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Location  LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	UpdatedAt time.Time   `gorm:"not null"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO is the embedded last reported position, indexed for the
// bounding box prefilter of the locator.
type LocationDTO struct {
	Latitude  float64 `gorm:"not null;index:idx_couriers_location,priority:1"`
	Longitude float64 `gorm:"not null;index:idx_couriers_location,priority:2"`
}

func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:   c.ID(),
		Name: c.Name(),
		Location: LocationDTO{
			Latitude:  c.Location().Latitude(),
			Longitude: c.Location().Longitude(),
		},
		UpdatedAt: c.UpdatedAt(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(dto.ID, dto.Name, loc, dto.UpdatedAt)
}
