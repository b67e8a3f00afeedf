package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/delivery"
)

type AcceptDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *slog.Logger
}

func NewAcceptDeliveryCommandHandler(uowFactory DeliveryUoWFactory, logger *slog.Logger) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "accept_delivery"),
	}
}

func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) (*delivery.Delivery, error) {
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

	d, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = d.Accept(cmd.Actor(), cmd.CourierID()); err != nil {
		if errors.Is(err, delivery.ErrAssignedToAnotherCourier) {
			return nil, errors.Join(ErrAlreadyAssigned, err)
		}
		return nil, err
	}

	if err = uow.DeliveryRepository().Update(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "delivery accepted",
		"delivery_id", d.ID().String(),
		"courier_id", d.DeliveryPersonID(),
	)
	return d, nil
}
