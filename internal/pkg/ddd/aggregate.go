// Package ddd holds the building blocks shared by every aggregate:
// domain events and the AggregateRoot that records them until they are
// written to the outbox by the unit of work.
package ddd

import (
	"time"

	"github.com/google/uuid"
)

// Event is a fact recorded by an aggregate. Payload must be JSON serializable.
type Event struct {
	ID          uuid.UUID
	Name        string
	AggregateID string
	OccurredAt  time.Time
	Payload     map[string]any
}

// NewEvent stamps a new event with a random id and the current UTC time.
func NewEvent(name string, aggregateID string, payload map[string]any) Event {
	return Event{
		ID:          uuid.New(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// Aggregate is implemented by every aggregate root that can be tracked by a unit of work.
type Aggregate interface {
	DomainEvents() []Event
	ClearDomainEvents()
}

// PersistentAggregate is an aggregate that remembers the state it was loaded
// with, for conditional updates. MarkPersisted is called after a successful commit.
type PersistentAggregate interface {
	Aggregate
	MarkPersisted()
}

// AggregateRoot is embedded into aggregates to collect raised events.
type AggregateRoot struct {
	events []Event
}

// RaiseEvent appends an event to the pending list.
func (a *AggregateRoot) RaiseEvent(event Event) {
	a.events = append(a.events, event)
}

// DomainEvents returns a copy of the pending events.
func (a *AggregateRoot) DomainEvents() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// ClearDomainEvents drops pending events once they have been stored.
func (a *AggregateRoot) ClearDomainEvents() {
	a.events = nil
}
