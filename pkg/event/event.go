// Package event provides a small in-process event dispatcher. Services fire
// domain events; listeners wired in the kernel fan them out (live feed,
// metrics).
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/ruangkopi/cafe/pkg/logger"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

// Bus holds listeners by event name. The zero value is not usable; call New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners. A
// panicking listener is logged and does not affect the others or the caller.
func (b *Bus) Fire(ctx context.Context, event string, payload any) {
	if b == nil {
		return
	}
	for _, h := range b.snapshot(event) {
		b.call(ctx, event, h, payload)
	}
}

func (b *Bus) snapshot(event string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	return hs
}

func (b *Bus) call(ctx context.Context, event string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event: listener panicked",
				"event", event, "error", fmt.Sprintf("%v", r))
		}
	}()
	h(ctx, payload)
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}
