package commands

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const DefaultRetryBatchSize = 20

var ErrRetryPendingAssignmentsCommandIsNotConstructed = errors.New(
	"RetryPendingAssignmentsCommand must be created via NewRetryPendingAssignmentsCommand constructor",
)

type RetryPendingAssignmentsCommand struct {
	limit int

	guard guard.ConstructorGuard
}

func NewRetryPendingAssignmentsCommand(limit int) (RetryPendingAssignmentsCommand, error) {
	if limit <= 0 {
		return RetryPendingAssignmentsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, nil)
	}
	return RetryPendingAssignmentsCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RetryPendingAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrRetryPendingAssignmentsCommandIsNotConstructed)
}

func (c RetryPendingAssignmentsCommand) Limit() int {
	return c.limit
}
