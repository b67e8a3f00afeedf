package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"
)

// ChangeOrderStatusCommandHandler applies an order status transition.
//
// Moving an order without a courier to out_for_delivery is a composite
// operation: the courier is assigned first through the CourierAssigner, then
// the transition is applied to the reloaded order. If the assignment fails the
// order status stays unchanged and the assignment error is returned.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	assigner   CourierAssigner
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	assigner CourierAssigner,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		notifier:   notifier,
		logger:     logger.With("component", "change_order_status"),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.ValidateTransition(cmd.Status(), cmd.Actor()); err != nil {
		return nil, err
	}

	if cmd.Status() == order.OutForDelivery && !o.HasCourier() {
		assignCmd, cmdErr := NewAssignCourierCommand(o.ID())
		if cmdErr != nil {
			return nil, cmdErr
		}
		if _, err = h.assigner.Handle(ctx, assignCmd); err != nil {
			return nil, err
		}
		if o, err = orderRepo.Get(ctx, cmd.OrderID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = o.Transition(cmd.Status(), cmd.Actor()); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(o.Status().String()).Inc()
	h.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID().String(),
		"status", o.Status().String(),
		"actor_role", string(cmd.Actor().Role),
	)

	notifyBestEffort(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  o.CustomerID(),
		Type:    ports.NotificationOrderStatusChanged,
		OrderID: o.ID().String(),
		Message: fmt.Sprintf("Your order is now %s", o.Status()),
	})

	return o, nil
}
