package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated              = "order.created"
	EventOrderStatusChanged        = "order.status_changed"
	EventOrderCourierAssigned      = "order.courier_assigned"
	EventOrderPaymentStatusChanged = "order.payment_status_changed"
)

var (
	// ErrOrderIsNotConstructed is returned for orders not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierAlreadyAssigned is returned when the courier slot is already taken.
	ErrCourierAlreadyAssigned = errors.New("order already has a courier")

	// ErrCourierRequired is returned when an order would go out for delivery without a courier.
	ErrCourierRequired = errors.New("order cannot go out for delivery without a courier")
)

// Order is the aggregate root of the fulfillment saga.
//
// Order follows these invariants:
//   - totalAmount is computed once from the item snapshots and never recomputed
//   - status and paymentStatus only move through their state machines
//   - deliveryPersonID is set at most once; there is no unassignment
//   - every mutation bumps updatedAt
type Order struct {
	ddd.AggregateRoot

	id               kernel.UUID
	customerID       string
	restaurantID     string
	deliveryPersonID *string
	items            []Item
	totalAmount      decimal.Decimal
	status           Status
	paymentStatus    PaymentStatus
	deliveryAddress  string
	paymentMethod    PaymentMethod
	createdAt        time.Time
	updatedAt        time.Time

	// state observed at load time, used by the repository for conditional updates
	originalStatus     Status
	originalHadCourier bool

	isConstructed bool
}

// NewOrder creates a pending, unpaid order priced from item snapshots.
//
// Parameters:
//   - id: order identifier
//   - customerID: identity of the ordering customer
//   - restaurantID: restaurant that prepares the order
//   - items: at least one line, priced from the menu at order time
//   - deliveryAddress: free text address
//   - paymentMethod: card or cash
//
// Example:
//
//	item, _ := order.NewItem("pizza", "Margherita", 2, decimal.RequireFromString("9.50"))
//	o, err := order.NewOrder(kernel.NewUUID(), "cust-1", "rest-1", []order.Item{item}, "Main st 1", order.PaymentMethodCard)
//	// o.TotalAmount() == 19.00, o.Status() == order.Pending
func NewOrder(
	id kernel.UUID,
	customerID string,
	restaurantID string,
	items []Item,
	deliveryAddress string,
	paymentMethod PaymentMethod,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.totalAmount = sumItems(items)
	o.originalStatus = o.status

	o.RaiseEvent(ddd.NewEvent(EventOrderCreated, o.id.String(), map[string]any{
		"customerId":   o.customerID,
		"restaurantId": o.restaurantID,
		"totalAmount":  o.totalAmount.StringFixed(2),
	}))

	return o, nil
}

// RestoreParams carries the persisted state of an order.
type RestoreParams struct {
	ID               kernel.UUID
	CustomerID       string
	RestaurantID     string
	DeliveryPersonID *string
	Items            []Item
	TotalAmount      decimal.Decimal
	Status           Status
	PaymentStatus    PaymentStatus
	DeliveryAddress  string
	PaymentMethod    PaymentMethod
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreOrder rebuilds an order from storage. The stored total is kept as is.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		totalAmount:   p.TotalAmount,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		isConstructed: true,
	}

	var courierErr error
	if p.DeliveryPersonID != nil {
		courierErr = o.setDeliveryPersonID(*p.DeliveryPersonID)
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setRestaurantID(p.RestaurantID),
		o.setItems(p.Items),
		o.setDeliveryAddress(p.DeliveryAddress),
		o.setPaymentMethod(p.PaymentMethod),
		p.Status.Validate(),
		p.PaymentStatus.Validate(),
		courierErr,
	); err != nil {
		return nil, err
	}

	o.status = p.Status
	o.paymentStatus = p.PaymentStatus
	o.MarkPersisted()

	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() string {
	return o.customerID
}

func (o *Order) RestaurantID() string {
	return o.restaurantID
}

// DeliveryPersonID returns the assigned courier or nil.
func (o *Order) DeliveryPersonID() *string {
	if o.deliveryPersonID == nil {
		return nil
	}
	id := *o.deliveryPersonID
	return &id
}

// HasCourier reports whether a courier has been assigned.
func (o *Order) HasCourier() bool {
	return o.deliveryPersonID != nil
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// OriginalStatus is the status observed when the order was loaded or last persisted.
func (o *Order) OriginalStatus() Status {
	return o.originalStatus
}

// OriginalHadCourier reports whether the courier slot was taken when the order was loaded.
func (o *Order) OriginalHadCourier() bool {
	return o.originalHadCourier
}

// MarkPersisted records the current state as the new baseline for conditional updates.
func (o *Order) MarkPersisted() {
	o.originalStatus = o.status
	o.originalHadCourier = o.deliveryPersonID != nil
}

// ValidateTransition checks the edge table and the actor's permission without
// changing the order. The courier requirement of out_for_delivery is not checked.
func (o *Order) ValidateTransition(to Status, actor kernel.Actor) error {
	if _, err := o.status.Transition(to); err != nil {
		return err
	}
	return o.authorize(to, actor)
}

// Transition applies a requested status change on behalf of actor.
//
// Business rules:
//   - (current, to) must be an edge of the state machine, otherwise InvalidTransition
//   - the customer may cancel only their own order and only while pending or confirmed
//   - restaurant staff confirm, prepare, dispatch and cancel
//   - only the assigned courier marks the order delivered
//   - admin and system may apply any allowed edge
//   - out_for_delivery requires an assigned courier
func (o *Order) Transition(to Status, actor kernel.Actor) error {
	if err := o.ValidateTransition(to, actor); err != nil {
		return err
	}
	if to == OutForDelivery && o.deliveryPersonID == nil {
		return ErrCourierRequired
	}

	o.changeStatus(to, actor)
	return nil
}

// AssignCourier takes the courier slot. A pending order is confirmed as part of the assignment.
func (o *Order) AssignCourier(courierID string) error {
	if o.deliveryPersonID != nil {
		return ErrCourierAlreadyAssigned
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s order cannot be assigned a courier", errs.ErrInvalidTransition, o.status)
	}
	if err := o.setDeliveryPersonID(courierID); err != nil {
		return err
	}

	o.touch()
	o.RaiseEvent(ddd.NewEvent(EventOrderCourierAssigned, o.id.String(), map[string]any{
		"deliveryPersonId": courierID,
	}))

	if o.status == Pending {
		o.changeStatus(Confirmed, kernel.SystemActor())
	}
	return nil
}

// MarkPaid records a settled payment. A pending order is confirmed.
func (o *Order) MarkPaid() error {
	if err := o.changePaymentStatus(PaymentPaid); err != nil {
		return err
	}
	if o.status == Pending {
		o.changeStatus(Confirmed, kernel.SystemActor())
	}
	return nil
}

// MarkPaymentFailed records a failed charge; the order status is unchanged.
func (o *Order) MarkPaymentFailed() error {
	return o.changePaymentStatus(PaymentFailed)
}

// MarkRefunded records a refund of a settled payment.
func (o *Order) MarkRefunded() error {
	return o.changePaymentStatus(PaymentRefunded)
}

// CompleteDelivery propagates a delivered Delivery to the order.
func (o *Order) CompleteDelivery() error {
	return o.Transition(Delivered, kernel.SystemActor())
}

// CancelAfterFailedDelivery propagates a failed Delivery to the order. It is
// the only way into Cancelled from out_for_delivery and is not reachable
// through Transition.
func (o *Order) CancelAfterFailedDelivery() error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError("order", o.status, Cancelled)
	}
	o.changeStatus(Cancelled, kernel.SystemActor())
	return nil
}

func (o *Order) authorize(to Status, actor kernel.Actor) error {
	allowed := false
	switch actor.Role {
	case kernel.RoleAdmin, kernel.RoleSystem:
		allowed = true
	case kernel.RoleRestaurant:
		allowed = to != Delivered
	case kernel.RoleCustomer:
		allowed = to == Cancelled &&
			actor.ID == o.customerID &&
			(o.status == Pending || o.status == Confirmed)
	case kernel.RoleDelivery:
		allowed = to == Delivered &&
			o.deliveryPersonID != nil &&
			*o.deliveryPersonID == actor.ID
	}

	if !allowed {
		return errs.NewNotAuthorizedError(actor.ID, string(actor.Role),
			fmt.Sprintf("move order %s from %s to %s", o.id, o.status, to))
	}
	return nil
}

func (o *Order) changeStatus(to Status, actor kernel.Actor) {
	from := o.status
	o.status = to
	o.touch()
	o.RaiseEvent(ddd.NewEvent(EventOrderStatusChanged, o.id.String(), map[string]any{
		"from":      from.String(),
		"to":        to.String(),
		"actorRole": string(actor.Role),
	}))
}

func (o *Order) changePaymentStatus(to PaymentStatus) error {
	next, err := o.paymentStatus.Transition(to)
	if err != nil {
		return err
	}

	from := o.paymentStatus
	o.paymentStatus = next
	o.touch()
	o.RaiseEvent(ddd.NewEvent(EventOrderPaymentStatusChanged, o.id.String(), map[string]any{
		"from": from.String(),
		"to":   next.String(),
	}))
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID string) error {
	if strings.TrimSpace(restaurantID) == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setDeliveryPersonID(courierID string) error {
	if strings.TrimSpace(courierID) == "" {
		return errs.NewValueIsRequiredError("deliveryPersonId")
	}
	o.deliveryPersonID = &courierID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func sumItems(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
