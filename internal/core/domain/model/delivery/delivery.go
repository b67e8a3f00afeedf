package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"
)

const (
	EventDeliveryCreated       = "delivery.created"
	EventDeliveryStatusChanged = "delivery.status_changed"
	EventDeliveryAccepted      = "delivery.accepted"
)

var (
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrAssignedToAnotherCourier is returned when a courier accepts a delivery held by someone else.
	ErrAssignedToAnotherCourier = errors.New("delivery is assigned to another courier")

	// ErrDeliveryIsFinished is returned for location updates on a terminal delivery.
	ErrDeliveryIsFinished = errors.New("delivery is finished")
)

// Delivery is the courier's part of the fulfillment. It is created by the
// assignment service and afterwards mutated only by the assigned courier or an admin.
//
// Invariants:
//   - one delivery per order
//   - pickupTime is set once, when the status first reaches picked_up
//   - deliveryTime is set once, when the status reaches delivered or failed
//   - the courier is never replaced mid-flight
type Delivery struct {
	ddd.AggregateRoot

	id               kernel.UUID
	orderID          kernel.UUID
	deliveryPersonID string
	status           Status
	currentLocation  kernel.Location
	acceptedAt       *time.Time
	pickupTime       *time.Time
	deliveryTime     *time.Time
	createdAt        time.Time
	updatedAt        time.Time

	originalStatus Status

	isConstructed bool
}

// NewDelivery creates an assigned delivery located at the pickup point.
func NewDelivery(id kernel.UUID, orderID kernel.UUID, courierID string, pickup kernel.Location) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:        Assigned,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDeliveryPersonID(courierID),
		d.setCurrentLocation(pickup),
	); err != nil {
		return nil, err
	}
	d.originalStatus = d.status

	d.RaiseEvent(ddd.NewEvent(EventDeliveryCreated, d.id.String(), map[string]any{
		"orderId":          d.orderID.String(),
		"deliveryPersonId": d.deliveryPersonID,
	}))

	return d, nil
}

// RestoreParams carries the persisted state of a delivery.
type RestoreParams struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	DeliveryPersonID string
	Status           Status
	CurrentLocation  kernel.Location
	AcceptedAt       *time.Time
	PickupTime       *time.Time
	DeliveryTime     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreDelivery rebuilds a delivery from storage.
func RestoreDelivery(p RestoreParams) (*Delivery, error) {
	d := &Delivery{
		acceptedAt:    p.AcceptedAt,
		pickupTime:    p.PickupTime,
		deliveryTime:  p.DeliveryTime,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(p.ID),
		d.setOrderID(p.OrderID),
		d.setDeliveryPersonID(p.DeliveryPersonID),
		d.setCurrentLocation(p.CurrentLocation),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	d.status = p.Status
	d.MarkPersisted()
	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID {
	return d.id
}

func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Delivery) DeliveryPersonID() string {
	return d.deliveryPersonID
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) CurrentLocation() kernel.Location {
	return d.currentLocation
}

func (d *Delivery) AcceptedAt() *time.Time {
	return d.acceptedAt
}

func (d *Delivery) PickupTime() *time.Time {
	return d.pickupTime
}

func (d *Delivery) DeliveryTime() *time.Time {
	return d.deliveryTime
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// OriginalStatus is the status observed when the delivery was loaded or last persisted.
func (d *Delivery) OriginalStatus() Status {
	return d.originalStatus
}

// MarkPersisted records the current status as the baseline for conditional updates.
func (d *Delivery) MarkPersisted() {
	d.originalStatus = d.status
}

// Transition applies a status change requested by actor.
//
// Only the courier holding the delivery (or an admin) may move it; anyone else
// gets NotAuthorized. picked_up stamps pickupTime, delivered and failed stamp
// deliveryTime. Propagation to the order is done by the caller in the same
// unit of work.
func (d *Delivery) Transition(to Status, actor kernel.Actor) error {
	if err := d.authorize(actor, fmt.Sprintf("move delivery %s to %s", d.id, to)); err != nil {
		return err
	}

	next, err := d.status.Transition(to)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch next {
	case PickedUp:
		if d.pickupTime == nil {
			d.pickupTime = &now
		}
	case Delivered, Failed:
		if d.deliveryTime == nil {
			d.deliveryTime = &now
		}
	}

	from := d.status
	d.status = next
	d.updatedAt = now
	d.RaiseEvent(ddd.NewEvent(EventDeliveryStatusChanged, d.id.String(), map[string]any{
		"orderId": d.orderID.String(),
		"from":    from.String(),
		"to":      next.String(),
	}))
	return nil
}

// Accept confirms the assignment by the courier holding it. Repeated accepts
// by the same courier are no-ops. A courier id other than the assigned one is
// rejected before the actor is checked.
func (d *Delivery) Accept(actor kernel.Actor, courierID string) error {
	if courierID != d.deliveryPersonID {
		return ErrAssignedToAnotherCourier
	}
	if err := d.authorize(actor, fmt.Sprintf("accept delivery %s", d.id)); err != nil {
		return err
	}
	if d.status != Assigned {
		return fmt.Errorf("%w: %s delivery cannot be accepted", errs.ErrInvalidTransition, d.status)
	}
	if d.acceptedAt != nil {
		return nil
	}

	now := time.Now().UTC()
	d.acceptedAt = &now
	d.updatedAt = now
	d.RaiseEvent(ddd.NewEvent(EventDeliveryAccepted, d.id.String(), map[string]any{
		"deliveryPersonId": d.deliveryPersonID,
	}))
	return nil
}

// UpdateLocation moves the display position of an active delivery.
func (d *Delivery) UpdateLocation(actor kernel.Actor, location kernel.Location) error {
	if err := d.authorize(actor, fmt.Sprintf("update location of delivery %s", d.id)); err != nil {
		return err
	}
	if d.status.IsTerminal() {
		return ErrDeliveryIsFinished
	}
	if err := d.setCurrentLocation(location); err != nil {
		return err
	}
	d.updatedAt = time.Now().UTC()
	return nil
}

func (d *Delivery) authorize(actor kernel.Actor, action string) error {
	if actor.Is(kernel.RoleAdmin, kernel.RoleSystem) {
		return nil
	}
	if actor.Role == kernel.RoleDelivery && actor.ID == d.deliveryPersonID {
		return nil
	}
	return errs.NewNotAuthorizedError(actor.ID, string(actor.Role), action)
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setDeliveryPersonID(courierID string) error {
	if strings.TrimSpace(courierID) == "" {
		return errs.NewValueIsRequiredError("deliveryPersonId")
	}
	d.deliveryPersonID = courierID
	return nil
}

func (d *Delivery) setCurrentLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.currentLocation = location
	return nil
}
