package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrChangeDeliveryStatusCommandIsNotConstructed = errors.New(
	"ChangeDeliveryStatusCommand must be created via NewChangeDeliveryStatusCommand constructor",
)

// ChangeDeliveryStatusCommand is a delivery status update sent by the courier app.
type ChangeDeliveryStatusCommand struct {
	deliveryID kernel.UUID
	status     delivery.Status
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewChangeDeliveryStatusCommand(
	deliveryID kernel.UUID,
	status delivery.Status,
	actor kernel.Actor,
) (ChangeDeliveryStatusCommand, error) {
	if err := errors.Join(deliveryID.Validate(), status.Validate()); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}
	actor, err := kernel.NewActor(actor.ID, actor.Role)
	if err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}

	return ChangeDeliveryStatusCommand{
		deliveryID: deliveryID,
		status:     status,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryStatusCommandIsNotConstructed)
}

func (c ChangeDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c ChangeDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

func (c ChangeDeliveryStatusCommand) Actor() kernel.Actor {
	return c.actor
}
