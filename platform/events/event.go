// Package events is the in-process event bus the gateway's modules publish
// wizard lifecycle signals on. Publishing is fire-and-forget; a handler
// failure never reaches the publisher.
package events

import (
	"context"
	"time"
)

// Event is one domain signal. Concrete events embed BaseEvent and add their
// own payload fields.
type Event interface {
	// EventName identifies the event type wherever it is routed or logged.
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp every event shares.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a new event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events of one type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus fans events out to subscribed handlers.
type Bus interface {
	// Publish delivers the event to every handler subscribed to its name.
	// Delivery is asynchronous; errors are logged on the bus.
	Publish(ctx context.Context, event Event)

	// Subscribe registers a handler under an event name, matching the
	// value the event's EventName returns.
	Subscribe(eventName string, handler Handler)
}
