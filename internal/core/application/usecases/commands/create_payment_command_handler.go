package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"
)

// CreatePaymentCommandHandler creates the single pending payment of an order.
// The amount is the order total; the payer is the order's customer.
type CreatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	logger     *slog.Logger
}

func NewCreatePaymentCommandHandler(uowFactory PaymentUoWFactory, logger *slog.Logger) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "create_payment"),
	}
}

func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleAdmin) && (actor.Role != kernel.RoleCustomer || actor.ID != o.CustomerID()) {
		return nil, errs.NewNotAuthorizedError(actor.ID, string(actor.Role), fmt.Sprintf("pay for order %s", o.ID()))
	}
	if o.Status() == order.Cancelled {
		return nil, fmt.Errorf("%w: cancelled order %s cannot be paid", errs.ErrInvalidTransition, o.ID())
	}

	paymentRepo := uow.PaymentRepository()
	_, err = paymentRepo.GetByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		return nil, ErrPaymentAlreadyExists
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	p, err := payment.NewPayment(
		kernel.NewUUID(),
		o.ID(),
		o.CustomerID(),
		o.TotalAmount(),
		cmd.Currency(),
		o.PaymentMethod(),
		cmd.ProviderReference(),
	)
	if err != nil {
		return nil, err
	}

	if err = paymentRepo.Add(ctx, p); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return nil, errors.Join(ErrPaymentAlreadyExists, err)
		}
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "payment created",
		"payment_id", p.ID().String(),
		"order_id", o.ID().String(),
		"provider_reference", p.ProviderReference(),
		"amount", p.Amount().String(),
	)
	return p, nil
}
