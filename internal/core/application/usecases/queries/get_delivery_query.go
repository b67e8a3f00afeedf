package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery reads one delivery on behalf of actor.
type GetDeliveryQuery struct {
	deliveryID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(deliveryID kernel.UUID, actor kernel.Actor) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	actor, err := kernel.NewActor(actor.ID, actor.Role)
	if err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

func (q GetDeliveryQuery) Actor() kernel.Actor {
	return q.actor
}

// GetDeliveryQueryResponse is the read model of a delivery. Latitude and
// Longitude are the courier's last display position.
type GetDeliveryQueryResponse struct {
	ID               string
	OrderID          string
	DeliveryPersonID string
	Status           string
	Latitude         float64
	Longitude        float64
	AcceptedAt       *time.Time
	PickupTime       *time.Time
	DeliveryTime     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
