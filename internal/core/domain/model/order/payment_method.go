package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// ParsePaymentMethod accepts "card" or "cash".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	if m != PaymentMethodCard && m != PaymentMethodCash {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not card or cash", string(m)))
	}
	return nil
}

func (m PaymentMethod) String() string {
	return string(m)
}
