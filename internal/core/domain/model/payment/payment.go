package payment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const EventPaymentStatusChanged = "payment.status_changed"

var (
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrOutcomeConflict is returned when a provider event contradicts the
	// settled state of the payment (for example "failed" after "completed").
	ErrOutcomeConflict = errors.New("event outcome conflicts with payment status")

	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Payment is the charge for one order. providerReference, the provider's
// charge/intent id, is the idempotency key of webhook processing.
type Payment struct {
	ddd.AggregateRoot

	id                kernel.UUID
	orderID           kernel.UUID
	userID            string
	amount            decimal.Decimal
	currency          string
	method            order.PaymentMethod
	status            Status
	providerReference string
	failureReason     string
	createdAt         time.Time
	updatedAt         time.Time

	originalStatus Status

	isConstructed bool
}

// NewPayment creates a pending payment at checkout.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	userID string,
	amount decimal.Decimal,
	currency string,
	method order.PaymentMethod,
	providerReference string,
) (*Payment, error) {
	now := time.Now().UTC()
	p := &Payment{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setUserID(userID),
		p.setAmount(amount),
		p.setCurrency(currency),
		p.setMethod(method),
		p.setProviderReference(providerReference),
	); err != nil {
		return nil, err
	}
	p.originalStatus = p.status

	return p, nil
}

// RestoreParams carries the persisted state of a payment.
type RestoreParams struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	UserID            string
	Amount            decimal.Decimal
	Currency          string
	Method            order.PaymentMethod
	Status            Status
	ProviderReference string
	FailureReason     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestorePayment rebuilds a payment from storage.
func RestorePayment(r RestoreParams) (*Payment, error) {
	p := &Payment{
		failureReason: r.FailureReason,
		createdAt:     r.CreatedAt,
		updatedAt:     r.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(r.ID),
		p.setOrderID(r.OrderID),
		p.setUserID(r.UserID),
		p.setAmount(r.Amount),
		p.setCurrency(r.Currency),
		p.setMethod(r.Method),
		p.setProviderReference(r.ProviderReference),
		r.Status.Validate(),
	); err != nil {
		return nil, err
	}

	p.status = r.Status
	p.MarkPersisted()
	return p, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Payment) UserID() string {
	return p.userID
}

func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

func (p *Payment) Currency() string {
	return p.currency
}

func (p *Payment) Method() order.PaymentMethod {
	return p.method
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) ProviderReference() string {
	return p.providerReference
}

func (p *Payment) FailureReason() string {
	return p.failureReason
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// OriginalStatus is the status observed when the payment was loaded or last persisted.
func (p *Payment) OriginalStatus() Status {
	return p.originalStatus
}

func (p *Payment) MarkPersisted() {
	p.originalStatus = p.status
}

// Apply records a provider outcome.
//
// Returns:
//   - (false, nil) when the payment is already in the outcome's status (duplicate delivery)
//   - (true, nil) when the status changed
//   - ErrOutcomeConflict when the outcome contradicts the current status
func (p *Payment) Apply(outcome Outcome, failureReason string) (bool, error) {
	target := outcome.TargetStatus()
	if err := target.Validate(); err != nil {
		return false, err
	}
	if p.status == target {
		return false, nil
	}

	next, err := p.status.transition(target)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrOutcomeConflict, err)
	}

	from := p.status
	p.status = next
	if next == Failed {
		p.failureReason = failureReason
	}
	p.updatedAt = time.Now().UTC()
	p.RaiseEvent(ddd.NewEvent(EventPaymentStatusChanged, p.id.String(), map[string]any{
		"orderId":           p.orderID.String(),
		"providerReference": p.providerReference,
		"from":              from.String(),
		"to":                next.String(),
	}))
	return true, nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	p.userID = userID
	return nil
}

func (p *Payment) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setCurrency(currency string) error {
	if !currencyPattern.MatchString(currency) {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	p.currency = currency
	return nil
}

func (p *Payment) setMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setProviderReference(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return errs.NewValueIsRequiredError("providerReference")
	}
	p.providerReference = ref
	return nil
}
