// Package kafka ships outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// envelope is the value written for every event.
type envelope struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregateId"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Payload     json.RawMessage `json:"payload"`
}

// EventPublisher implements ports.EventPublisher. Messages are keyed by
// aggregate id so events of one aggregate stay ordered within a partition.
type EventPublisher struct {
	writer messageWriter
}

// NewEventPublisher creates a publisher writing to topic on brokers.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return newEventPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	})
}

func newEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish writes all messages in one batch. It fails as a whole; the caller
// keeps the batch unprocessed and retries it later.
func (p *EventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		value, err := json.Marshal(envelope{
			ID:          m.ID.String(),
			Name:        m.Name,
			AggregateID: m.AggregateID,
			OccurredAt:  m.OccurredAt,
			Payload:     json.RawMessage(m.Payload),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", m.ID, err)
		}

		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID),
			Value: value,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event-name", Value: []byte(m.Name)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("failed to write %d messages to kafka: %w", len(batch), err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
