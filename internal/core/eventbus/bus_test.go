package eventbus

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
)

func TestPublishDispatchOrder(t *testing.T) {
	bus := New()

	var got []string
	bus.Subscribe(func(ev trigger.Event) { got = append(got, "first:"+string(ev.Type)) })
	bus.Subscribe(func(ev trigger.Event) { got = append(got, "second:"+string(ev.Type)) })

	bus.Publish(trigger.Event{Type: trigger.TypeOpenNewComment})

	assert.Equal(t, []string{
		"first:open-new-comment",
		"second:open-new-comment",
	}, got)
}

func TestPublishRecoversPanics(t *testing.T) {
	bus := New()

	var panicked any
	bus.OnPanic(func(_ trigger.Event, recovered any) { panicked = recovered })

	bus.Subscribe(func(trigger.Event) { panic("boom") })

	ran := false
	bus.Subscribe(func(trigger.Event) { ran = true })

	bus.Publish(trigger.Event{Type: trigger.TypeReplyToComment})

	assert.Equal(t, "boom", panicked)
	assert.True(t, ran, "later subscribers still run after a panic")
}

func TestOnPublishHook(t *testing.T) {
	bus := New()

	var seen []trigger.Type
	bus.OnPublish(func(ev trigger.Event) { seen = append(seen, ev.Type) })

	bus.Publish(trigger.Event{Type: trigger.TypeEditComment})
	bus.Publish(trigger.Event{Type: trigger.TypeDeleteReply})

	assert.Equal(t, []trigger.Type{trigger.TypeEditComment, trigger.TypeDeleteReply}, seen)
}

func TestRegisterDebugLogger(t *testing.T) {
	bus := New()

	// Register with a nop logger — verifies no panic.
	RegisterDebugLogger(bus, zerolog.Nop())

	bus.Subscribe(func(trigger.Event) { panic("handler panic") })

	bus.Publish(trigger.Event{Type: trigger.TypeOpenNewComment})
	bus.Publish(trigger.Event{Type: trigger.TypeDeleteComment})
}
