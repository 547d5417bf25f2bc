// Package gesture submits synthetic pointer strokes and global actions to
// the host.
package gesture

import (
	"time"

	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/platform"
	"github.com/rs/zerolog"
)

// Dispatcher builds gestures and hands them to the host injector. Calls
// report whether the host accepted the gesture; completion is not awaited.
// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	injector platform.GestureInjector
	log      zerolog.Logger
}

// NewDispatcher returns a Dispatcher submitting to injector.
func NewDispatcher(injector platform.GestureInjector, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		injector: injector,
		log:      logging.For(log, "gesture"),
	}
}

// Tap presses (x, y) for model.TapDuration.
func (d *Dispatcher) Tap(x, y int) bool {
	return d.dispatch(model.Tap(x, y), "tap")
}

// LongPress presses (x, y) for model.LongPressDuration.
func (d *Dispatcher) LongPress(x, y int) bool {
	return d.dispatch(model.LongPress(x, y), "long-press")
}

// Swipe strokes from (x1, y1) to (x2, y2) over duration. A negative
// duration is rejected without reaching the host.
func (d *Dispatcher) Swipe(x1, y1, x2, y2 int, duration time.Duration) bool {
	g, err := model.Swipe(x1, y1, x2, y2, duration)
	if err != nil {
		d.log.Warn().Err(err).Msg("swipe rejected")
		return false
	}
	return d.injector.DispatchGesture(g, nil)
}

// GlobalAction performs a system-wide action by host id.
func (d *Dispatcher) GlobalAction(action model.GlobalAction) bool {
	return d.injector.PerformGlobalAction(action)
}

func (d *Dispatcher) dispatch(g model.Gesture, kind string) bool {
	start := g.Start()
	cb := &logCallback{
		log: d.log.With().Str("gesture", kind).Int("x", start.X).Int("y", start.Y).Logger(),
	}
	return d.injector.DispatchGesture(g, cb)
}

// logCallback reports gesture completion at debug level.
type logCallback struct {
	log zerolog.Logger
}

func (c *logCallback) OnCompleted() { c.log.Debug().Msg("gesture completed") }
func (c *logCallback) OnCancelled() { c.log.Debug().Msg("gesture cancelled") }
