package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

type AcceptDeliveryCommand struct {
	deliveryID kernel.UUID
	courierID  string
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewAcceptDeliveryCommand(deliveryID kernel.UUID, courierID string, actor kernel.Actor) (AcceptDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return AcceptDeliveryCommand{}, err
	}
	if strings.TrimSpace(courierID) == "" {
		return AcceptDeliveryCommand{}, errs.NewValueIsRequiredError("deliveryPersonId")
	}
	actor, err := kernel.NewActor(actor.ID, actor.Role)
	if err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return AcceptDeliveryCommand{
		deliveryID: deliveryID,
		courierID:  courierID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c AcceptDeliveryCommand) CourierID() string {
	return c.courierID
}

func (c AcceptDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}
