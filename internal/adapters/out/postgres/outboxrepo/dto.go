// Package outboxrepo stores domain events written in the same transaction as
// the aggregate changes that raised them.
package outboxrepo

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"

	"github.com/google/uuid"
)

// OutboxMessageDTO is a row of the outbox table. ProcessedAt stays NULL
// until the message has been published.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"size:100;not null"`
	AggregateID string     `gorm:"size:64;not null;index"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(event ddd.Event) (OutboxMessageDTO, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return OutboxMessageDTO{}, err
	}

	return OutboxMessageDTO{
		ID:          event.ID,
		Name:        event.Name,
		AggregateID: event.AggregateID,
		Payload:     payload,
		OccurredAt:  event.OccurredAt,
	}, nil
}

func toMessage(dto OutboxMessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          dto.ID,
		Name:        dto.Name,
		AggregateID: dto.AggregateID,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}
}
