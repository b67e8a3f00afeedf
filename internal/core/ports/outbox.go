package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is a domain event persisted in the same transaction as the
// aggregate change that raised it.
type OutboxMessage struct {
	ID          uuid.UUID
	Name        string
	AggregateID string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads the event log for publishing.
type OutboxRepository interface {
	// GetUnprocessed returns up to limit unpublished messages, oldest first.
	GetUnprocessed(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkProcessed flags messages as published.
	MarkProcessed(ctx context.Context, ids []uuid.UUID) error
}

// EventPublisher ships outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
