package commands_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	customerID   = "customer-1"
	restaurantID = "restaurant-1"
	ownerID      = "owner-1"
	courierID    = "courier-1"
)

var (
	customerActor   = kernel.Actor{ID: customerID, Role: kernel.RoleCustomer}
	restaurantActor = kernel.Actor{ID: ownerID, Role: kernel.RoleRestaurant}
	courierActor    = kernel.Actor{ID: courierID, Role: kernel.RoleDelivery}
)

func pickupLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(52.52, 13.405)
	require.NoError(t, err)
	return loc
}

func activeRestaurant(t *testing.T) ports.Restaurant {
	t.Helper()
	return ports.Restaurant{
		ID:       restaurantID,
		OwnerID:  ownerID,
		IsActive: true,
		Location: pickupLocation(t),
	}
}

// persistedOrder builds an order as a repository would return it.
func persistedOrder(t *testing.T, status order.Status, courier *string) *order.Order {
	t.Helper()
	return persistedOrderWithID(t, kernel.NewUUID(), status, courier)
}

// persistedOrderWithID is persistedOrder for a second read of the same order.
func persistedOrderWithID(t *testing.T, id kernel.UUID, status order.Status, courier *string) *order.Order {
	t.Helper()
	item, err := order.NewItem("dish-1", "Ramen", 2, decimal.RequireFromString("11.75"))
	require.NoError(t, err)
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:               id,
		CustomerID:       customerID,
		RestaurantID:     restaurantID,
		DeliveryPersonID: courier,
		Items:            []order.Item{item},
		TotalAmount:      decimal.RequireFromString("23.50"),
		Status:           status,
		PaymentStatus:    order.PaymentPending,
		DeliveryAddress:  "Main st 1",
		PaymentMethod:    order.PaymentMethodCard,
	})
	require.NoError(t, err)
	return o
}

// persistedDelivery builds a delivery for orderID walked to status.
func persistedDelivery(t *testing.T, orderID kernel.UUID, status delivery.Status) *delivery.Delivery {
	t.Helper()
	d, err := delivery.RestoreDelivery(delivery.RestoreParams{
		ID:               kernel.NewUUID(),
		OrderID:          orderID,
		DeliveryPersonID: courierID,
		Status:           status,
		CurrentLocation:  pickupLocation(t),
	})
	require.NoError(t, err)
	return d
}

func strPtr(s string) *string {
	return &s
}

const providerRef = "pi_123"

// persistedPayment builds a payment for o in status.
func persistedPayment(t *testing.T, o *order.Order, status payment.Status) *payment.Payment {
	t.Helper()
	p, err := payment.RestorePayment(payment.RestoreParams{
		ID:                kernel.NewUUID(),
		OrderID:           o.ID(),
		UserID:            o.CustomerID(),
		Amount:            o.TotalAmount(),
		Currency:          "EUR",
		Method:            o.PaymentMethod(),
		Status:            status,
		ProviderReference: providerRef,
	})
	require.NoError(t, err)
	return p
}
