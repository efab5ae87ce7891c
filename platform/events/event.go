// Package events is the in-process event bus. Lead events are published
// after a write commits and consumed by side effects such as the hot-lead
// email, which must never fail the request that triggered them.
package events

import (
	"context"
	"time"
)

// Event names follow "<context>.<entity>.<verb>", e.g. "leads.lead.scored".
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by every event to carry its timestamp.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps an event with the current UTC time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now().UTC()}
}

type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe to the bus.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus delivers events by name. Publish is fire-and-forget; PublishSync runs
// handlers in order and returns the first error.
type Bus interface {
	Publish(ctx context.Context, event Event)
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}
