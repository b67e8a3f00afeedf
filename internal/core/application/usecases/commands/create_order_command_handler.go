package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/metrics"
	"fooddelivery/internal/pkg/tracing"
)

// CreateOrderCommandHandler runs the order fulfillment saga.
//
// Steps:
//  1. the restaurant must exist and be active (ErrRestaurantNotFound)
//  2. every line is priced from the current menu; a missing, foreign or
//     disabled dish fails with ErrMenuItemUnavailable
//  3. the order is persisted as pending/pending
//  4. the restaurant owner is notified (best effort)
//  5. a courier is assigned; ErrNoDriverAvailable leaves the order unassigned
//  6. the customer is notified (best effort)
//
// Nothing after step 3 rolls the order back. A failure in step 5 other than
// ErrNoDriverAvailable is logged and the created order is still returned.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.RestaurantCatalog
	assigner   CourierAssigner
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.RestaurantCatalog,
	assigner CourierAssigner,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		assigner:   assigner,
		notifier:   notifier,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle places the order and returns it, assigned if a courier was found.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "CreateOrder")
	defer span.End()

	restaurant, err := h.catalog.GetRestaurant(ctx, cmd.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, cmd.RestaurantID())
	}
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, fmt.Errorf("%w: %s is not active", ErrRestaurantNotFound, cmd.RestaurantID())
	}

	items, err := h.priceLines(ctx, cmd.RestaurantID(), cmd.Lines())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.RestaurantID(), items,
		cmd.DeliveryAddress(), cmd.PaymentMethod())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = h.persist(ctx, uow, o); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	h.logger.InfoContext(ctx, "order created",
		"order_id", o.ID().String(),
		"customer_id", o.CustomerID(),
		"restaurant_id", o.RestaurantID(),
		"total", o.TotalAmount().StringFixed(2),
	)

	notifyBestEffort(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  restaurant.OwnerID,
		Type:    ports.NotificationNewOrder,
		OrderID: o.ID().String(),
		Message: fmt.Sprintf("New order %s, total %s", o.ID(), o.TotalAmount().StringFixed(2)),
	})

	o = h.assign(ctx, uow, o)

	notifyBestEffort(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  o.CustomerID(),
		Type:    ports.NotificationOrderConfirmation,
		OrderID: o.ID().String(),
		Message: fmt.Sprintf("Your order %s has been placed", o.ID()),
	})

	return o, nil
}

func (h CreateOrderCommandHandler) priceLines(ctx context.Context, restaurantID string, lines []OrderLine) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		menuItem, err := h.catalog.GetMenuItem(ctx, line.MenuItemID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s not found", ErrMenuItemUnavailable, line.MenuItemID)
		}
		if err != nil {
			return nil, err
		}
		if menuItem.RestaurantID != restaurantID {
			return nil, fmt.Errorf("%w: %s is not on the menu of %s", ErrMenuItemUnavailable, line.MenuItemID, restaurantID)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: %s is not available", ErrMenuItemUnavailable, line.MenuItemID)
		}

		item, err := order.NewItem(menuItem.ID, menuItem.Name, line.Quantity, menuItem.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (h CreateOrderCommandHandler) persist(ctx context.Context, uow OrderUoW, o *order.Order) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// assign runs the assignment step and returns the freshest view of the order.
func (h CreateOrderCommandHandler) assign(ctx context.Context, uow OrderUoW, o *order.Order) *order.Order {
	cmd, err := NewAssignCourierCommand(o.ID())
	if err != nil {
		h.logger.ErrorContext(ctx, "cannot build assignment command", "order_id", o.ID().String(), "error", err)
		return o
	}

	_, err = h.assigner.Handle(ctx, cmd)
	switch {
	case errors.Is(err, ErrNoDriverAvailable):
		h.logger.InfoContext(ctx, "no driver available, order left unassigned", "order_id", o.ID().String())
		return o
	case err != nil:
		h.logger.ErrorContext(ctx, "courier assignment failed, order left unassigned",
			"order_id", o.ID().String(), "error", err)
		return o
	}

	assigned, err := uow.OrderRepository().Get(ctx, o.ID())
	if err != nil {
		h.logger.WarnContext(ctx, "cannot reload assigned order", "order_id", o.ID().String(), "error", err)
		return o
	}
	return assigned
}
