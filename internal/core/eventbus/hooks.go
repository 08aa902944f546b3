package eventbus

import (
	"sync"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
)

// hooks holds the lifecycle hook state for the Bus, separated from the
// dispatch path.
type hooks struct {
	mu          sync.RWMutex
	onPublish   []func(trigger.Event)
	onSubscribe []func()
	onPanic     []func(trigger.Event, any)
}

// OnPublish registers a hook that fires before an event is dispatched.
func (b *Bus) OnPublish(fn func(trigger.Event)) {
	b.hooks.mu.Lock()
	b.hooks.onPublish = append(b.hooks.onPublish, fn)
	b.hooks.mu.Unlock()
}

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (b *Bus) OnSubscribe(fn func()) {
	b.hooks.mu.Lock()
	b.hooks.onSubscribe = append(b.hooks.onSubscribe, fn)
	b.hooks.mu.Unlock()
}

// OnPanic registers a hook that fires when a subscriber panics.
func (b *Bus) OnPanic(fn func(trigger.Event, any)) {
	b.hooks.mu.Lock()
	b.hooks.onPanic = append(b.hooks.onPanic, fn)
	b.hooks.mu.Unlock()
}

func (h *hooks) runOnPublish(ev trigger.Event) {
	h.mu.RLock()
	fns := make([]func(trigger.Event), len(h.onPublish))
	copy(fns, h.onPublish)
	h.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (h *hooks) runOnSubscribe() {
	h.mu.RLock()
	fns := make([]func(), len(h.onSubscribe))
	copy(fns, h.onSubscribe)
	h.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

func (h *hooks) runOnPanic(ev trigger.Event, recovered any) {
	h.mu.RLock()
	fns := make([]func(trigger.Event, any), len(h.onPanic))
	copy(fns, h.onPanic)
	h.mu.RUnlock()
	for _, fn := range fns {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(ev, recovered)
		}()
	}
}
