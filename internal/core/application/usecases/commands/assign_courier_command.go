package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand asks for the nearest courier to be assigned to an order.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	d, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoDriverAvailable) {
//	    // order stays unassigned
//	}
type AssignCourierCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to orderID.
func NewAssignCourierCommand(orderID kernel.UUID) (AssignCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}
