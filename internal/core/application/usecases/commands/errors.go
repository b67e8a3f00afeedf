package commands

import "errors"

var (
	// ErrNoDriverAvailable means no courier is within the search radius of the
	// restaurant. It is a soft failure: the order stays valid and unassigned.
	ErrNoDriverAvailable = errors.New("no driver available")

	// ErrAlreadyAssigned is returned when an order already has a live delivery
	// or a courier, or when a courier claims a delivery assigned to someone else.
	ErrAlreadyAssigned = errors.New("order is already assigned")

	// ErrRestaurantNotFound is returned when the restaurant is unknown or inactive.
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrMenuItemUnavailable is returned when a line item is missing from the
	// menu, belongs to another restaurant or is switched off.
	ErrMenuItemUnavailable = errors.New("menu item unavailable")

	// ErrPaymentAlreadyExists is returned by checkout when the order already has a payment.
	ErrPaymentAlreadyExists = errors.New("payment already exists for order")
)
