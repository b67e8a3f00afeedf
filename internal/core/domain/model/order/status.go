package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getAllowedTransitions is the edge table of the order state machine.
// Statuses without an entry are terminal.
func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Preparing, Cancelled},
		Preparing:      {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered},
	}
}

// ParseStatus converts the wire name into a Status.
// "ready_for_delivery" is accepted as an alias of "out_for_delivery".
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "ready_for_delivery" {
		return OutForDelivery, nil
	}
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether s has an edge to Cancelled.
func (s Status) IsCancellable() bool {
	return s.CanTransitionTo(Cancelled)
}

// CanTransitionTo reports whether (s, to) is an edge of the state machine.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range getAllowedTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns to if (s, to) is allowed, otherwise an
// *errs.InvalidTransitionError naming the attempted pair.
func (s Status) Transition(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError("order", s, to)
	}
	return to, nil
}
