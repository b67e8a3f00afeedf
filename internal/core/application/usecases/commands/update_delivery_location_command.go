package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateDeliveryLocationCommandIsNotConstructed = errors.New(
	"UpdateDeliveryLocationCommand must be created via NewUpdateDeliveryLocationCommand constructor",
)

type UpdateDeliveryLocationCommand struct {
	deliveryID kernel.UUID
	location   kernel.Location
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryLocationCommand(
	deliveryID kernel.UUID,
	location kernel.Location,
	actor kernel.Actor,
) (UpdateDeliveryLocationCommand, error) {
	if err := errors.Join(deliveryID.Validate(), location.Validate()); err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}
	actor, err := kernel.NewActor(actor.ID, actor.Role)
	if err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}

	return UpdateDeliveryLocationCommand{
		deliveryID: deliveryID,
		location:   location,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryLocationCommandIsNotConstructed)
}

func (c UpdateDeliveryLocationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c UpdateDeliveryLocationCommand) Location() kernel.Location {
	return c.location
}

func (c UpdateDeliveryLocationCommand) Actor() kernel.Actor {
	return c.actor
}
