package commands

import (
	"context"
	"errors"
	"log/slog"
)

// RetryPendingAssignmentsCommandHandler re-runs courier assignment for
// non-terminal orders that still have no courier, oldest first. A failure
// for one order does not stop the batch.
type RetryPendingAssignmentsCommandHandler struct {
	uowFactory OrderUoWFactory
	assigner   CourierAssigner
	logger     *slog.Logger
}

func NewRetryPendingAssignmentsCommandHandler(
	uowFactory OrderUoWFactory,
	assigner CourierAssigner,
	logger *slog.Logger,
) RetryPendingAssignmentsCommandHandler {
	return RetryPendingAssignmentsCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		logger:     logger.With("component", "assignment_retry"),
	}
}

// Handle returns the number of orders that got a courier.
func (h RetryPendingAssignmentsCommandHandler) Handle(ctx context.Context, cmd RetryPendingAssignmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListUnassigned(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, o := range orders {
		if err = ctx.Err(); err != nil {
			return assigned, err
		}

		assignCmd, cmdErr := NewAssignCourierCommand(o.ID())
		if cmdErr != nil {
			return assigned, cmdErr
		}

		_, err = h.assigner.Handle(ctx, assignCmd)
		switch {
		case err == nil:
			assigned++
		case errors.Is(err, ErrNoDriverAvailable), errors.Is(err, ErrAlreadyAssigned):
			h.logger.DebugContext(ctx, "order not assigned", "order_id", o.ID().String(), "reason", err.Error())
		default:
			h.logger.WarnContext(ctx, "assignment retry failed", "order_id", o.ID().String(), "error", err)
		}
	}

	return assigned, nil
}
