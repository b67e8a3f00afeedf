// Package deliveryrepo maps delivery aggregates to the deliveries table.
package deliveryrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is a row of the deliveries table. The partial unique index on
// order_id allows a new delivery only after the previous one failed.
type DeliveryDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_deliveries_live_order,where:status <> 'failed'"`
	DeliveryPersonID string      `gorm:"size:64;not null;index"`
	Status           string      `gorm:"size:32;not null"`
	CurrentLocation  LocationDTO `gorm:"embedded;embeddedPrefix:current_"`
	AcceptedAt       *time.Time
	PickupTime       *time.Time
	DeliveryTime     *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// LocationDTO is the embedded display position of the courier.
type LocationDTO struct {
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:               d.ID().Bytes(),
		OrderID:          d.OrderID().Bytes(),
		DeliveryPersonID: d.DeliveryPersonID(),
		Status:           d.Status().String(),
		CurrentLocation: LocationDTO{
			Latitude:  d.CurrentLocation().Latitude(),
			Longitude: d.CurrentLocation().Longitude(),
		},
		AcceptedAt:   d.AcceptedAt(),
		PickupTime:   d.PickupTime(),
		DeliveryTime: d.DeliveryTime(),
		CreatedAt:    d.CreatedAt(),
		UpdatedAt:    d.UpdatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(dto.CurrentLocation.Latitude, dto.CurrentLocation.Longitude)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.RestoreParams{
		ID:               id,
		OrderID:          orderID,
		DeliveryPersonID: dto.DeliveryPersonID,
		Status:           status,
		CurrentLocation:  location,
		AcceptedAt:       dto.AcceptedAt,
		PickupTime:       dto.PickupTime,
		DeliveryTime:     dto.DeliveryTime,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}
