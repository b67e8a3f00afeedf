package commands

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// OrderLine is one requested dish. Prices are never taken from the client.
type OrderLine struct {
	MenuItemID string
	Quantity   int
}

// CreateOrderCommand represents a customer placing an order at a restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "cust-1", "rest-1",
//	    []OrderLine{{MenuItemID: "dish-1", Quantity: 2}}, "Main st 1", order.PaymentMethodCard)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      string
	restaurantID    string
	lines           []OrderLine
	deliveryAddress string
	paymentMethod   order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of the request. Menu lookups happen in the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID string,
	restaurantID string,
	lines []OrderLine,
	deliveryAddress string,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setLines(lines),
		cmd.setDeliveryAddress(deliveryAddress),
		paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.paymentMethod = paymentMethod

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() string {
	return c.restaurantID
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID string) error {
	if strings.TrimSpace(restaurantID) == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}
	for i, l := range lines {
		if strings.TrimSpace(l.MenuItemID) == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].menuItemId", i))
		}
		if l.Quantity < 1 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), l.Quantity, 1, "unbounded")
		}
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	c.deliveryAddress = address
	return nil
}
