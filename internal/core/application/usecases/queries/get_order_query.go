// Package queries contains read operations. Handlers read the tables directly
// with SQL and return flat read models; aggregates are not loaded.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of actor.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, kernel.Actor{ID: "cust-1", Role: kernel.RoleCustomer})
//	if err != nil {
//	    return err
//	}
//	order, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	actor, err := kernel.NewActor(actor.ID, actor.Role)
	if err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// GetOrderQueryResponse is the read model of an order.
type GetOrderQueryResponse struct {
	ID               string
	CustomerID       string
	RestaurantID     string
	DeliveryPersonID *string
	Items            []GetOrderQueryItem
	TotalAmount      decimal.Decimal
	Status           string
	PaymentStatus    string
	DeliveryAddress  string
	PaymentMethod    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GetOrderQueryItem is one order line as priced at order time.
type GetOrderQueryItem struct {
	MenuItemID string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}
