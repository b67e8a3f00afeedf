package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// PaymentStatus tracks settlement of the order as reported by the payment provider.
//
//	Pending ──> Paid ──> Refunded
//	   │         ^
//	   v         │
//	 Failed ─────┘
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

func getAllowedPaymentTransitions() map[PaymentStatus][]PaymentStatus {
	//nolint:exhaustive // refunded is terminal
	return map[PaymentStatus][]PaymentStatus{
		PaymentPending: {PaymentPaid, PaymentFailed},
		PaymentFailed:  {PaymentPaid},
		PaymentPaid:    {PaymentRefunded},
	}
}

// ParsePaymentStatus converts the stored name into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s))
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Transition returns to if the move is allowed.
func (s PaymentStatus) Transition(to PaymentStatus) (PaymentStatus, error) {
	for _, next := range getAllowedPaymentTransitions()[s] {
		if next == to {
			return to, nil
		}
	}
	return PaymentUnknown, errs.NewInvalidTransitionError("order payment", s, to)
}
