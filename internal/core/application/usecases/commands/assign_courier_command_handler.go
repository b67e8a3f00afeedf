package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/metrics"
	"fooddelivery/internal/pkg/tracing"
)

// errOrderChanged reports that the order was updated by someone else between
// load and store. The courier slot may still be free, so it is not ErrAlreadyAssigned.
var errOrderChanged = fmt.Errorf("order changed during assignment: %w", errs.ErrConcurrentModification)

// CourierAssigner assigns the nearest courier to an order.
// Implemented by AssignCourierCommandHandler; other handlers depend on this
// interface so that the assignment side effect can be asserted in tests.
type CourierAssigner interface {
	Handle(ctx context.Context, cmd AssignCourierCommand) (*delivery.Delivery, error)
}

// AssignCourierCommandHandler picks the nearest courier around the order's
// restaurant and creates the delivery.
//
// Algorithm:
//   - reject the order if it already has a courier or a live delivery (ErrAlreadyAssigned)
//   - read the restaurant location from the catalog
//   - search couriers within services.DefaultSearchRadiusMeters, at most services.DefaultCandidateLimit
//   - take the first (nearest) candidate, no load balancing
//   - create the delivery at the restaurant location and set the order's courier;
//     a pending order is confirmed by the assignment
//
// An empty search result fails with ErrNoDriverAvailable and changes nothing.
// Two concurrent assignments of the same order are serialized by the store:
// the loser gets ErrAlreadyAssigned. If another writer changes the order
// status in the meantime, the assignment is decided again once on a fresh
// read and otherwise fails with errs.ErrConcurrentModification.
type AssignCourierCommandHandler struct {
	uowFactory DeliveryUoWFactory
	catalog    ports.RestaurantCatalog
	locator    ports.CourierLocator
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewAssignCourierCommandHandler(
	uowFactory DeliveryUoWFactory,
	catalog ports.RestaurantCatalog,
	locator ports.CourierLocator,
	notifier ports.Notifier,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		locator:    locator,
		notifier:   notifier,
		logger:     logger.With("component", "assign_courier"),
	}
}

// Handle assigns a courier and returns the new delivery.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "AssignCourier")
	defer span.End()

	d, err := h.assign(ctx, cmd)
	if errors.Is(err, errOrderChanged) {
		h.logger.DebugContext(ctx, "order changed during assignment, retrying", "order_id", cmd.OrderID().String())
		d, err = h.assign(ctx, cmd)
	}
	return d, err
}

// assign runs one load-decide-store round in its own unit of work.
func (h AssignCourierCommandHandler) assign(ctx context.Context, cmd AssignCourierCommand) (*delivery.Delivery, error) {
	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.ensureUnassigned(ctx, uow.DeliveryRepository(), o); err != nil {
		return nil, err
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, o.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, o.RestaurantID())
	}
	if err != nil {
		return nil, err
	}

	candidates, err := h.locator.FindCandidates(ctx, restaurant.Location,
		services.DefaultSearchRadiusMeters, services.DefaultCandidateLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		metrics.Assignments.WithLabelValues("no_driver").Inc()
		return nil, ErrNoDriverAvailable
	}
	chosen := candidates[0]

	d, err := delivery.NewDelivery(kernel.NewUUID(), o.ID(), chosen.CourierID, restaurant.Location)
	if err != nil {
		return nil, err
	}
	if err = o.AssignCourier(chosen.CourierID); err != nil {
		if errors.Is(err, order.ErrCourierAlreadyAssigned) {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return nil, fmt.Errorf("%w: %w", ErrAlreadyAssigned, err)
		}
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return nil, errOrderChanged
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.Assignments.WithLabelValues("assigned").Inc()
	h.logger.InfoContext(ctx, "courier assigned",
		"order_id", o.ID().String(),
		"delivery_id", d.ID().String(),
		"courier_id", chosen.CourierID,
		"distance_m", chosen.DistanceMeters,
	)

	notifyBestEffort(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  chosen.CourierID,
		Type:    ports.NotificationDeliveryAssigned,
		OrderID: o.ID().String(),
		Message: fmt.Sprintf("New delivery from restaurant %s to %s", restaurant.ID, o.DeliveryAddress()),
	})

	return d, nil
}

func (h AssignCourierCommandHandler) ensureUnassigned(
	ctx context.Context,
	deliveryRepo ports.DeliveryRepository,
	o *order.Order,
) error {
	if o.HasCourier() {
		return ErrAlreadyAssigned
	}

	existing, err := deliveryRepo.GetByOrderID(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	case err != nil:
		return err
	case existing.Status() != delivery.Failed:
		return ErrAlreadyAssigned
	default:
		return nil
	}
}
