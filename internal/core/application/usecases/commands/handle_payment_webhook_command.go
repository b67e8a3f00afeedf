package commands

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrHandlePaymentWebhookCommandIsNotConstructed = errors.New(
	"HandlePaymentWebhookCommand must be created via NewHandlePaymentWebhookCommand constructor",
)

// HandlePaymentWebhookCommand carries the raw provider request. The payload
// must be the exact bytes received, since the signature covers them.
type HandlePaymentWebhookCommand struct {
	payload   []byte
	signature string

	guard guard.ConstructorGuard
}

func NewHandlePaymentWebhookCommand(payload []byte, signature string) (HandlePaymentWebhookCommand, error) {
	if len(payload) == 0 {
		return HandlePaymentWebhookCommand{}, errs.NewValueIsRequiredError("payload")
	}

	return HandlePaymentWebhookCommand{
		payload:   payload,
		signature: signature,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c HandlePaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrHandlePaymentWebhookCommandIsNotConstructed)
}

func (c HandlePaymentWebhookCommand) Payload() []byte {
	return c.payload
}

func (c HandlePaymentWebhookCommand) Signature() string {
	return c.signature
}
