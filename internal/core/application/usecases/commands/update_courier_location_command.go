package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand registers the position a courier is matched from.
// Name is optional for known couriers.
type UpdateCourierLocationCommand struct {
	courierID string
	name      string
	location  kernel.Location
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateCourierLocationCommand(
	courierID string,
	name string,
	location kernel.Location,
	actor kernel.Actor,
) (UpdateCourierLocationCommand, error) {
	if strings.TrimSpace(courierID) == "" {
		return UpdateCourierLocationCommand{}, errs.NewValueIsRequiredError("courierId")
	}
	if err := location.Validate(); err != nil {
		return UpdateCourierLocationCommand{}, err
	}
	actor, err := kernel.NewActor(actor.ID, actor.Role)
	if err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		courierID: courierID,
		name:      strings.TrimSpace(name),
		location:  location,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

func (c UpdateCourierLocationCommand) CourierID() string {
	return c.courierID
}

func (c UpdateCourierLocationCommand) Name() string {
	return c.name
}

func (c UpdateCourierLocationCommand) Location() kernel.Location {
	return c.location
}

func (c UpdateCourierLocationCommand) Actor() kernel.Actor {
	return c.actor
}
