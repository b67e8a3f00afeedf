package commands

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const DefaultOutboxBatchSize = 100

var ErrPublishOutboxEventsCommandIsNotConstructed = errors.New(
	"PublishOutboxEventsCommand must be created via NewPublishOutboxEventsCommand constructor",
)

type PublishOutboxEventsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxEventsCommand(batchSize int) (PublishOutboxEventsCommand, error) {
	if batchSize <= 0 {
		return PublishOutboxEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, nil)
	}
	return PublishOutboxEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PublishOutboxEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxEventsCommandIsNotConstructed)
}

func (c PublishOutboxEventsCommand) BatchSize() int {
	return c.batchSize
}
