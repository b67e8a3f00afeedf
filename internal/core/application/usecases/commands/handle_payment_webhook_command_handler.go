package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/metrics"
	"fooddelivery/internal/pkg/tracing"
)

// WebhookStatus tells the provider endpoint how an authenticated event was handled.
// All of them are acknowledged with a 2xx response.
type WebhookStatus string

const (
	WebhookApplied   WebhookStatus = "applied"
	WebhookDuplicate WebhookStatus = "duplicate"
	WebhookIgnored   WebhookStatus = "ignored"
)

// WebhookResult is the acknowledgement of a provider event.
type WebhookResult struct {
	Status        WebhookStatus
	EventType     string
	PaymentID     string
	OrderID       string
	PaymentStatus string
}

// SignatureVerifier authenticates a raw webhook body.
type SignatureVerifier interface {
	Verify(payload []byte, header string) error
}

type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		ProviderReference string `json:"providerReference"`
		OrderID           string `json:"orderId"`
		FailureReason     string `json:"failureReason"`
	} `json:"data"`
}

// eventOutcomes maps provider event types, including the provider's native
// names, to outcomes. Types not listed are acknowledged and ignored.
func eventOutcomes() map[string]payment.Outcome {
	return map[string]payment.Outcome{
		"payment_processing":            payment.OutcomeProcessing,
		"payment_succeeded":             payment.OutcomeSucceeded,
		"payment_failed":                payment.OutcomeFailed,
		"payment_refunded":              payment.OutcomeRefunded,
		"payment_intent.processing":     payment.OutcomeProcessing,
		"payment_intent.succeeded":      payment.OutcomeSucceeded,
		"payment_intent.payment_failed": payment.OutcomeFailed,
		"charge.refunded":               payment.OutcomeRefunded,
	}
}

// HandlePaymentWebhookCommandHandler reconciles payments with provider events.
//
// Processing steps:
//  1. Verify the signature; nothing is read or written for a forged request
//  2. Acknowledge unknown event types without touching state
//  3. Load the payment by providerReference and apply the outcome; an event
//     repeating the current status is a duplicate and changes nothing
//  4. Propagate to the order payment status (a settled payment confirms a pending order)
//  5. Notify the customer, best effort
//
// An event contradicting a settled payment is acknowledged as ignored and
// logged. Losing a concurrent update race on the payment is reported as a duplicate.
type HandlePaymentWebhookCommandHandler struct {
	uowFactory PaymentUoWFactory
	verifier   SignatureVerifier
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewHandlePaymentWebhookCommandHandler(
	uowFactory PaymentUoWFactory,
	verifier SignatureVerifier,
	notifier ports.Notifier,
	logger *slog.Logger,
) HandlePaymentWebhookCommandHandler {
	return HandlePaymentWebhookCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		notifier:   notifier,
		logger:     logger.With("component", "payment_webhook"),
	}
}

func (h HandlePaymentWebhookCommandHandler) Handle(
	ctx context.Context,
	cmd HandlePaymentWebhookCommand,
) (WebhookResult, error) {
	if err := cmd.Validate(); err != nil {
		return WebhookResult{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "HandlePaymentWebhook")
	defer span.End()

	if err := h.verifier.Verify(cmd.Payload(), cmd.Signature()); err != nil {
		metrics.PaymentWebhooks.WithLabelValues("rejected").Inc()
		h.logger.WarnContext(ctx, "webhook signature rejected", "error", err)
		return WebhookResult{}, err
	}

	var event webhookEvent
	if err := json.Unmarshal(cmd.Payload(), &event); err != nil {
		return WebhookResult{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	result := WebhookResult{EventType: event.Type}
	outcome, known := eventOutcomes()[strings.TrimSpace(event.Type)]
	if !known {
		result.Status = WebhookIgnored
		metrics.PaymentWebhooks.WithLabelValues(string(WebhookIgnored)).Inc()
		h.logger.InfoContext(ctx, "webhook event type ignored", "event_id", event.ID, "type", event.Type)
		return result, nil
	}

	ref := strings.TrimSpace(event.Data.ProviderReference)
	if ref == "" {
		return WebhookResult{}, errs.NewValueIsRequiredError("data.providerReference")
	}

	result, p, o, err := h.reconcile(ctx, result, ref, outcome, event)
	if err != nil {
		return WebhookResult{}, err
	}

	metrics.PaymentWebhooks.WithLabelValues(string(result.Status)).Inc()
	h.logger.InfoContext(ctx, "webhook event handled",
		"event_id", event.ID,
		"type", event.Type,
		"provider_reference", ref,
		"result", string(result.Status),
		"payment_status", result.PaymentStatus,
	)

	if result.Status == WebhookApplied && o != nil {
		metrics.OrderTransitions.WithLabelValues(o.Status().String()).Inc()
		notifyBestEffort(ctx, h.notifier, h.logger, ports.Notification{
			UserID:  p.UserID(),
			Type:    ports.NotificationPaymentStatusUpdate,
			OrderID: o.ID().String(),
			Message: fmt.Sprintf("Your payment is %s", p.Status()),
		})
	}

	return result, nil
}

func (h HandlePaymentWebhookCommandHandler) reconcile(
	ctx context.Context,
	result WebhookResult,
	ref string,
	outcome payment.Outcome,
	event webhookEvent,
) (WebhookResult, *payment.Payment, *order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	orderRepo := uow.OrderRepository()

	p, err := paymentRepo.GetByProviderReference(ctx, ref)
	if err != nil {
		return result, nil, nil, err
	}
	result.PaymentID = p.ID().String()
	result.OrderID = p.OrderID().String()
	if event.Data.OrderID != "" && event.Data.OrderID != result.OrderID {
		h.logger.WarnContext(ctx, "webhook order id differs from payment",
			"provider_reference", ref,
			"event_order_id", event.Data.OrderID,
			"payment_order_id", result.OrderID,
		)
	}

	changed, err := p.Apply(outcome, event.Data.FailureReason)
	if errors.Is(err, payment.ErrOutcomeConflict) {
		h.logger.WarnContext(ctx, "webhook outcome conflicts with payment",
			"provider_reference", ref,
			"payment_status", p.Status().String(),
			"outcome", outcome.String(),
		)
		result.Status = WebhookIgnored
		result.PaymentStatus = p.Status().String()
		return result, p, nil, nil
	}
	if err != nil {
		return result, nil, nil, err
	}
	result.PaymentStatus = p.Status().String()
	if !changed {
		result.Status = WebhookDuplicate
		return result, p, nil, nil
	}

	o, err := orderRepo.Get(ctx, p.OrderID())
	if err != nil {
		return result, nil, nil, err
	}
	orderChanged, err := propagatePayment(o, p.Status())
	if err != nil {
		return result, nil, nil, err
	}

	if err = paymentRepo.Update(ctx, p); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			result.Status = WebhookDuplicate
			return result, p, nil, nil
		}
		return result, nil, nil, err
	}
	if orderChanged {
		if err = orderRepo.Update(ctx, o); err != nil {
			return result, nil, nil, err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return result, nil, nil, err
	}

	result.Status = WebhookApplied
	return result, p, o, nil
}

// propagatePayment mirrors a payment status on the order.
func propagatePayment(o *order.Order, status payment.Status) (bool, error) {
	var err error
	switch status {
	case payment.Completed:
		err = o.MarkPaid()
	case payment.Failed:
		err = o.MarkPaymentFailed()
	case payment.Refunded:
		err = o.MarkRefunded()
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
