package kafka

// NewEventPublisherWithWriter exposes the writer seam to tests.
func NewEventPublisherWithWriter(writer messageWriter) *EventPublisher {
	return newEventPublisher(writer)
}
