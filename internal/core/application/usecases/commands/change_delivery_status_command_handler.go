package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"
)

// ChangeDeliveryStatusCommandHandler applies a delivery transition and
// propagates terminal outcomes to the order in the same transaction:
// delivered completes the order, failed cancels it. If the order cannot
// follow, neither change is committed.
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewChangeDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "change_delivery_status"),
	}
}

func (h ChangeDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeDeliveryStatusCommand,
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

	deliveryRepo := uow.DeliveryRepository()
	orderRepo := uow.OrderRepository()

	d, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}
	if err = d.Transition(cmd.Status(), cmd.Actor()); err != nil {
		return nil, err
	}

	o, err := orderRepo.Get(ctx, d.OrderID())
	if err != nil {
		return nil, err
	}

	propagate := true
	switch d.Status() {
	case delivery.Delivered:
		err = o.CompleteDelivery()
	case delivery.Failed:
		err = o.CancelAfterFailedDelivery()
	default:
		propagate = false
	}
	if err != nil {
		return nil, fmt.Errorf("order %s cannot follow delivery %s: %w", o.ID(), d.Status(), err)
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	if propagate {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.DeliveryTransitions.WithLabelValues(d.Status().String()).Inc()
	if propagate {
		metrics.OrderTransitions.WithLabelValues(o.Status().String()).Inc()
	}
	h.logger.InfoContext(ctx, "delivery status changed",
		"delivery_id", d.ID().String(),
		"order_id", o.ID().String(),
		"status", d.Status().String(),
		"order_status", o.Status().String(),
	)

	notifyBestEffort(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  o.CustomerID(),
		Type:    ports.NotificationDeliveryStatus,
		OrderID: o.ID().String(),
		Message: fmt.Sprintf("Your delivery is now %s", d.Status()),
	})

	return d, nil
}
