package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// MemoryEventBus is a simple in-memory implementation of the EventBus
// interface. Handlers run synchronously in publish order.
type MemoryEventBus struct {
	handlers map[string][]HandlerFunc
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewMemoryEventBus creates an empty in-memory bus.
func NewMemoryEventBus(logger *slog.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger,
	}
}

// Subscribe registers a handler for the given event type.
func (b *MemoryEventBus) Subscribe(eventType string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish delivers the event to every registered handler.
func (b *MemoryEventBus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := b.handlers[e.EventType()]
	b.mu.RUnlock()

	b.logger.Debug("publishing event", "type", e.EventType(), "handlers", len(handlers))
	for _, h := range handlers {
		h(ctx, e)
	}
}
