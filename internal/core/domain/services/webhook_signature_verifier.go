package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"
)

// DefaultSignatureTolerance is the accepted age of a signed webhook.
const DefaultSignatureTolerance = 5 * time.Minute

// ErrSignatureInvalid is returned when a webhook cannot be authenticated.
// Nothing is mutated for such a request.
var ErrSignatureInvalid = errors.New("webhook signature is invalid")

// WebhookSignatureVerifier authenticates payment provider webhooks signed with
// a shared secret. The signature header has the form
//
//	t=<unix seconds>,v1=<hex hmac-sha256 of "<t>.<raw body>">
//
// Several v1 entries may be present while the provider rotates secrets; one match is enough.
type WebhookSignatureVerifier struct {
	secret    string
	tolerance time.Duration
}

// NewWebhookSignatureVerifier creates a verifier. A non-positive tolerance
// falls back to DefaultSignatureTolerance.
func NewWebhookSignatureVerifier(secret string, tolerance time.Duration) WebhookSignatureVerifier {
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}
	return WebhookSignatureVerifier{
		secret:    secret,
		tolerance: tolerance,
	}
}

// Verify checks header against the raw request body.
func (v WebhookSignatureVerifier) Verify(payload []byte, header string) error {
	if v.secret == "" {
		return fmt.Errorf("%w: no secret configured", ErrSignatureInvalid)
	}

	if err := webhook.ValidatePayloadWithTolerance(payload, header, v.secret, v.tolerance); err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	}
	return nil
}

// Sign produces a header for payload at the given time. Used by tests and by
// local tooling that replays provider events.
func (v WebhookSignatureVerifier) Sign(payload []byte, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    v.secret,
		Timestamp: at,
		Scheme:    "v1",
	})
	return signed.Header
}
