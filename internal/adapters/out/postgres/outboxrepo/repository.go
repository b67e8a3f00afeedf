package outboxrepo

import (
	"context"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores events as unprocessed messages.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...ddd.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromEvent(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetUnprocessed locks up to limit unpublished rows, oldest first. Rows locked
// by another publisher are skipped.
func (r *GormOutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toMessage(dto))
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Update("processed_at", time.Now().UTC()).Error
}
