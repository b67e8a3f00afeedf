package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/delivery"
)

// UpdateDeliveryLocationCommandHandler stores the display position of an active delivery.
type UpdateDeliveryLocationCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewUpdateDeliveryLocationCommandHandler(uowFactory DeliveryUoWFactory) UpdateDeliveryLocationCommandHandler {
	return UpdateDeliveryLocationCommandHandler{uowFactory: uowFactory}
}

func (h UpdateDeliveryLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryLocationCommand,
) (*delivery.Delivery, error) {
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
	if err = d.UpdateLocation(cmd.Actor(), cmd.Location()); err != nil {
		return nil, err
	}
	if err = uow.DeliveryRepository().Update(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
