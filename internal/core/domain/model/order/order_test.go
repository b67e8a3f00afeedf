package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customerID   = "customer-1"
	restaurantID = "restaurant-1"
	courierID    = "courier-1"
)

func newItem(t *testing.T, id string, qty int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(id, "item "+id, qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		customerID,
		restaurantID,
		[]order.Item{newItem(t, "burger", 2, "8.25"), newItem(t, "fries", 1, "7.00")},
		"221B Baker Street",
		order.PaymentMethodCard,
	)
	require.NoError(t, err)
	return o
}

func actor(id string, role kernel.Role) kernel.Actor {
	return kernel.Actor{ID: id, Role: role}
}

// moveTo walks the happy path up to target using the admin role.
func moveTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	path := []order.Status{order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered}
	admin := actor("admin-1", kernel.RoleAdmin)
	for _, s := range path {
		if o.Status() == target {
			return
		}
		if s == order.OutForDelivery && !o.HasCourier() {
			require.NoError(t, o.AssignCourier(courierID))
		}
		require.NoError(t, o.Transition(s, admin))
	}
	require.Equal(t, target, o.Status())
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending unpaid order totaling the item snapshots", func(t *testing.T) {
		o := newOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "23.50", o.TotalAmount().StringFixed(2))
		assert.Nil(t, o.DeliveryPersonID())
		assert.False(t, o.CreatedAt().IsZero())
		require.Len(t, o.DomainEvents(), 1)
		assert.Equal(t, order.EventOrderCreated, o.DomainEvents()[0].Name)
	})

	t.Run("should collect every validation error", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "", "", nil, " ", order.PaymentMethod("crypto"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "customerId")
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "deliveryAddress")
	})

	t.Run("should reject zero value items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID,
			[]order.Item{{}}, "addr", order.PaymentMethodCash)

		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should reject non positive quantity", func(t *testing.T) {
		_, err := order.NewItem("m-1", "soup", 0, decimal.NewFromInt(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewItem("m-1", "soup", 1, decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should compute subtotal", func(t *testing.T) {
		item := newItem(t, "m-1", 3, "1.10")
		assert.Equal(t, "3.30", item.Subtotal().StringFixed(2))
	})
}

func TestOrder_Transition(t *testing.T) {
	t.Run("restaurant cannot skip confirmed", func(t *testing.T) {
		o := newOrder(t)

		err := o.Transition(order.Preparing, actor("owner-1", kernel.RoleRestaurant))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("restaurant confirms and prepares", func(t *testing.T) {
		o := newOrder(t)
		restaurant := actor("owner-1", kernel.RoleRestaurant)
		before := o.UpdatedAt()

		require.NoError(t, o.Transition(order.Confirmed, restaurant))
		require.NoError(t, o.Transition(order.Preparing, restaurant))

		assert.Equal(t, order.Preparing, o.Status())
		assert.False(t, o.UpdatedAt().Before(before))
	})

	t.Run("customer cancels own pending or confirmed order", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Confirmed} {
			o := newOrder(t)
			moveTo(t, o, status)

			require.NoError(t, o.Transition(order.Cancelled, actor(customerID, kernel.RoleCustomer)))
			assert.Equal(t, order.Cancelled, o.Status())
		}
	})

	t.Run("customer cannot cancel once preparing", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Preparing)

		err := o.Transition(order.Cancelled, actor(customerID, kernel.RoleCustomer))

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("restaurant cancels while preparing", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Preparing)

		require.NoError(t, o.Transition(order.Cancelled, actor("owner-1", kernel.RoleRestaurant)))
	})

	t.Run("other customer cannot cancel", func(t *testing.T) {
		o := newOrder(t)

		err := o.Transition(order.Cancelled, actor("someone-else", kernel.RoleCustomer))

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		o := newOrder(t)

		err := o.Transition(order.Confirmed, actor(customerID, kernel.RoleCustomer))

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("out_for_delivery requires a courier", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Preparing)

		err := o.Transition(order.OutForDelivery, actor("owner-1", kernel.RoleRestaurant))

		require.ErrorIs(t, err, order.ErrCourierRequired)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("only the assigned courier marks delivered", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.OutForDelivery)

		err := o.Transition(order.Delivered, actor("other-courier", kernel.RoleDelivery))
		require.ErrorIs(t, err, errs.ErrNotAuthorized)

		require.NoError(t, o.Transition(order.Delivered, actor(courierID, kernel.RoleDelivery)))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("restaurant cannot mark delivered", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.OutForDelivery)

		err := o.Transition(order.Delivered, actor("owner-1", kernel.RoleRestaurant))

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("terminal orders accept no transition", func(t *testing.T) {
		delivered := newOrder(t)
		moveTo(t, delivered, order.Delivered)
		cancelled := newOrder(t)
		require.NoError(t, cancelled.Transition(order.Cancelled, actor("admin", kernel.RoleAdmin)))

		for _, o := range []*order.Order{delivered, cancelled} {
			for _, to := range allStatuses {
				err := o.Transition(to, actor("admin", kernel.RoleAdmin))
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		}
	})

	t.Run("total never changes", func(t *testing.T) {
		o := newOrder(t)
		total := o.TotalAmount()

		moveTo(t, o, order.Delivered)

		assert.True(t, total.Equal(o.TotalAmount()))
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("assigning a pending order confirms it", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.AssignCourier(courierID))

		require.NotNil(t, o.DeliveryPersonID())
		assert.Equal(t, courierID, *o.DeliveryPersonID())
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("assigning a preparing order keeps its status", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Transition(order.Confirmed, actor("a", kernel.RoleAdmin)))
		require.NoError(t, o.Transition(order.Preparing, actor("a", kernel.RoleAdmin)))

		require.NoError(t, o.AssignCourier(courierID))

		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("courier slot is taken at most once", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.AssignCourier(courierID))

		err := o.AssignCourier("courier-2")

		require.ErrorIs(t, err, order.ErrCourierAlreadyAssigned)
		assert.Equal(t, courierID, *o.DeliveryPersonID())
	})

	t.Run("cancelled order cannot be assigned", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Transition(order.Cancelled, actor(customerID, kernel.RoleCustomer)))

		err := o.AssignCourier(courierID)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.DeliveryPersonID())
	})
}

func TestOrder_Payment(t *testing.T) {
	t.Run("paid pending order is confirmed", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.MarkPaid())

		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("paid preparing order keeps its status", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Preparing)

		require.NoError(t, o.MarkPaid())

		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("failed payment leaves status unchanged", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.MarkPaymentFailed())

		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("refund requires a settled payment", func(t *testing.T) {
		o := newOrder(t)
		require.ErrorIs(t, o.MarkRefunded(), errs.ErrInvalidTransition)

		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.MarkRefunded())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})
}

func TestOrder_DeliveryPropagation(t *testing.T) {
	t.Run("completed delivery delivers the order", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.OutForDelivery)

		require.NoError(t, o.CompleteDelivery())

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("completed delivery fails while still preparing", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Preparing)

		require.ErrorIs(t, o.CompleteDelivery(), errs.ErrInvalidTransition)
	})

	t.Run("failed delivery cancels an order out for delivery", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.OutForDelivery)

		require.NoError(t, o.CancelAfterFailedDelivery())

		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("failed delivery cannot touch a terminal order", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Delivered)

		require.ErrorIs(t, o.CancelAfterFailedDelivery(), errs.ErrInvalidTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("keeps stored total and baseline", func(t *testing.T) {
		courier := courierID
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:               kernel.NewUUID(),
			CustomerID:       customerID,
			RestaurantID:     restaurantID,
			DeliveryPersonID: &courier,
			Items:            []order.Item{newItem(t, "a", 1, "1.00")},
			TotalAmount:      decimal.RequireFromString("5.00"),
			Status:           order.Preparing,
			PaymentStatus:    order.PaymentPaid,
			DeliveryAddress:  "addr",
			PaymentMethod:    order.PaymentMethodCash,
		})

		require.NoError(t, err)
		assert.Equal(t, "5.00", o.TotalAmount().StringFixed(2))
		assert.Equal(t, order.Preparing, o.OriginalStatus())
		assert.True(t, o.OriginalHadCourier())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreParams{
			ID:              kernel.NewUUID(),
			CustomerID:      customerID,
			RestaurantID:    restaurantID,
			Items:           []order.Item{newItem(t, "a", 1, "1.00")},
			PaymentStatus:   order.PaymentPending,
			DeliveryAddress: "addr",
			PaymentMethod:   order.PaymentMethodCash,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
