package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"

	"github.com/google/uuid"
)

// PublishOutboxEventsCommandHandler moves one batch of committed domain
// events from the outbox to the event log. Rows are marked processed in the
// transaction that read them, after the publisher accepted the batch, so a
// crash in between republishes the batch (at-least-once).
type PublishOutboxEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewPublishOutboxEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOutboxEventsCommandHandler {
	return PublishOutboxEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the number of published messages.
func (h PublishOutboxEventsCommandHandler) Handle(ctx context.Context, cmd PublishOutboxEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.GetUnprocessed(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = outbox.MarkProcessed(ctx, ids); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	metrics.OutboxPublished.Add(float64(len(messages)))
	return len(messages), nil
}
