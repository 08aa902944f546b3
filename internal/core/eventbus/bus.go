// Package eventbus provides the subscription layer between the UI surface
// and the action router. Triggers are published here by whatever rendered the
// controls; handlers are registered here by the router. The bus replaces
// selector-based event delegation with an explicit dispatch abstraction.
package eventbus

import (
	"sync"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
)

// Subscriber is a callback invoked for every published trigger event.
type Subscriber func(trigger.Event)

// Bus is a synchronous in-process trigger bus. Dispatch happens inline on
// the publisher's goroutine, which keeps check-and-construct sequences in
// subscribers free of suspension points. Safe for use from the Bubble Tea
// update loop.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
	hooks       hooks
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a callback invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
	b.hooks.runOnSubscribe()
}

// Publish dispatches an event to all subscribers, in subscription order.
// A panicking subscriber is recovered and reported through the OnPanic hook;
// remaining subscribers still run.
func (b *Bus) Publish(ev trigger.Event) {
	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	b.hooks.runOnPublish(ev)

	for _, fn := range subs {
		b.dispatch(fn, ev)
	}
}

func (b *Bus) dispatch(fn Subscriber, ev trigger.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.hooks.runOnPanic(ev, r)
		}
	}()
	fn(ev)
}
