package payment

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the provider-side state of a charge.
//
//	Pending ──> Processing ──┬──> Completed ──> Refunded
//	   │                     │        ^
//	   └─────────────────────┴─> Failed
type Status int

const (
	Unknown Status = iota
	Pending
	Processing
	Completed
	Failed
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Failed:     "failed",
		Refunded:   "refunded",
	}
}

func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // refunded is terminal
	return map[Status][]Status{
		Pending:    {Processing, Completed, Failed},
		Processing: {Completed, Failed},
		Failed:     {Completed},
		Completed:  {Refunded},
	}
}

// ParseStatus converts the stored name into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid payment status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Refunded {
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

// PredecessorsOf lists the statuses that may move to s. Repositories use it
// as the expected pre-state set of a conditional update.
func PredecessorsOf(s Status) []Status {
	var out []Status
	for from, nexts := range getAllowedTransitions() {
		for _, next := range nexts {
			if next == s {
				out = append(out, from)
			}
		}
	}
	return out
}

func (s Status) transition(to Status) (Status, error) {
	for _, next := range getAllowedTransitions()[s] {
		if next == to {
			return to, nil
		}
	}
	return Unknown, errs.NewInvalidTransitionError("payment", s, to)
}
