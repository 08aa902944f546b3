package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
)

// RegisterDebugLogger registers bus hooks that log all trigger activity at
// debug level. Subscriber panics are reported at error level.
func RegisterDebugLogger(bus *Bus, logger zerolog.Logger) {
	bus.OnPublish(func(ev trigger.Event) {
		logger.Debug().
			Str("trigger", string(ev.Type)).
			Str("anchor", string(ev.Anchor)).
			Msg("trigger fired")
	})

	bus.OnPanic(func(ev trigger.Event, recovered any) {
		logger.Error().
			Str("trigger", string(ev.Type)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("trigger handler panicked")
	})
}
