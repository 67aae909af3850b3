package events

import (
	"context"
	"sync"

	"intake_gateway/platform/logger"
)

// InMemoryBus is a simple in-process event bus. Handlers registered for an
// event name receive every event published under that name.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish sends an event to all registered handlers asynchronously.
// Handler errors are logged, never propagated to the publisher.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event handler panic", "event", event.EventName(), "panic", r)
				}
			}()
			if err := h.Handle(ctx, event); err != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}(h)
	}
}

// Compile-time check that InMemoryBus implements Bus
var _ Bus = (*InMemoryBus)(nil)
