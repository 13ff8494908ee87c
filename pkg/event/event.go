// Package event provides an in-process event bus. Unlike a package-level
// registry, each Bus is an explicit value so its listeners are owned by the
// component that built it.
package event

import (
	"context"
	"sync"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches synchronously, in registration order. Fire returns after
// every handler has run.
func (b *Bus) Fire(ctx context.Context, event string, payload any) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}
