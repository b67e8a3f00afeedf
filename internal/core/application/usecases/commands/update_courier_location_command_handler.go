package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// UpdateCourierLocationCommandHandler upserts a courier with its latest
// position and indexes it in the locator after the commit. Only the courier
// itself or an admin may report a position.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	locator    ports.CourierLocator
	logger     *slog.Logger
}

func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	locator ports.CourierLocator,
	logger *slog.Logger,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		locator:    locator,
		logger:     logger.With("component", "update_courier_location"),
	}
}

func (h UpdateCourierLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCourierLocationCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleAdmin) && (actor.Role != kernel.RoleDelivery || actor.ID != cmd.CourierID()) {
		return nil, errs.NewNotAuthorizedError(actor.ID, string(actor.Role),
			fmt.Sprintf("report location of courier %s", cmd.CourierID()))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := h.upsert(ctx, uow.CourierRepository(), cmd)
	if err != nil {
		return nil, err
	}
	if err = uow.CourierRepository().Save(ctx, c); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.locator.TrackCourier(ctx, c); err != nil {
		h.logger.ErrorContext(ctx, "failed to index courier location",
			"courier_id", c.ID(),
			"error", err,
		)
		return nil, fmt.Errorf("index courier %s: %w", c.ID(), err)
	}

	return c, nil
}

func (h UpdateCourierLocationCommandHandler) upsert(
	ctx context.Context,
	repo ports.CourierRepository,
	cmd UpdateCourierLocationCommand,
) (*courier.Courier, error) {
	c, err := repo.Get(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.Location())
	}
	if err != nil {
		return nil, err
	}

	if cmd.Name() != "" {
		if err = c.Rename(cmd.Name()); err != nil {
			return nil, err
		}
	}
	if err = c.ReportLocation(cmd.Location()); err != nil {
		return nil, err
	}
	return c, nil
}
