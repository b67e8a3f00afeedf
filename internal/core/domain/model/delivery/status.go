package delivery

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
//	Assigned ──> PickedUp ──> InTransit ──┬──> Delivered
//	                                      └──> Failed
type Status int

const (
	Unknown Status = iota
	Assigned
	PickedUp
	InTransit
	Delivered
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Failed:    "failed",
	}
}

func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Assigned:  {PickedUp},
		PickedUp:  {InTransit},
		InTransit: {Delivered, Failed},
	}
}

// ParseStatus converts the wire name into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
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
	return s == Delivered || s == Failed
}

// CanTransitionTo reports whether (s, to) is an edge.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range getAllowedTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns to if (s, to) is allowed, otherwise an *errs.InvalidTransitionError.
func (s Status) Transition(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError("delivery", s, to)
	}
	return to, nil
}
