package ports

import "context"

// Notification types sent to the notification service.
const (
	NotificationNewOrder            = "new_order"
	NotificationOrderConfirmation   = "order_confirmation"
	NotificationOrderStatusChanged  = "order_status_changed"
	NotificationDeliveryAssigned    = "delivery_assigned"
	NotificationDeliveryStatus      = "delivery_status_changed"
	NotificationPaymentStatusUpdate = "payment_status_changed"
)

// Notification is the payload accepted by the notification service.
type Notification struct {
	UserID  string
	Type    string
	OrderID string
	Message string
}

// Notifier hands a notification over for delivery. Callers treat it as
// fire-and-forget: errors are logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
