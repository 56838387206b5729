// Package eventbus defines the in-process event bus contract used to fan
// out domain events to interested handlers.
package eventbus

import "context"

// Event is implemented by every domain event.
type Event interface {
	EventType() string
}

// HandlerFunc consumes a published event.
type HandlerFunc func(ctx context.Context, e Event)

// EventBus defines the contract for publishing and subscribing to domain events.
type EventBus interface {
	Publish(ctx context.Context, e Event)
	Subscribe(eventType string, handler HandlerFunc)
}
