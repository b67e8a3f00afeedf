package commands

import (
	"errors"
	"regexp"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// CreatePaymentCommand opens the charge for an order at checkout.
type CreatePaymentCommand struct {
	orderID           kernel.UUID
	providerReference string
	currency          string
	actor             kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreatePaymentCommand(
	orderID kernel.UUID,
	providerReference string,
	currency string,
	actor kernel.Actor,
) (CreatePaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreatePaymentCommand{}, err
	}
	if strings.TrimSpace(providerReference) == "" {
		return CreatePaymentCommand{}, errs.NewValueIsRequiredError("providerReference")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyCode.MatchString(currency) {
		return CreatePaymentCommand{}, errs.NewValueIsInvalidError("currency")
	}
	actor, err := kernel.NewActor(actor.ID, actor.Role)
	if err != nil {
		return CreatePaymentCommand{}, err
	}

	return CreatePaymentCommand{
		orderID:           orderID,
		providerReference: strings.TrimSpace(providerReference),
		currency:          currency,
		actor:             actor,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

func (c CreatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreatePaymentCommand) ProviderReference() string {
	return c.providerReference
}

func (c CreatePaymentCommand) Currency() string {
	return c.currency
}

func (c CreatePaymentCommand) Actor() kernel.Actor {
	return c.actor
}
