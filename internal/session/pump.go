package session

import (
	"context"

	"github.com/mj1618/a11y-bridge/internal/platform"
)

// Pump applies host events to s until events closes or ctx ends. newHandle
// builds the operation handle for each new session.
func Pump[S any](ctx context.Context, s *State[S], events <-chan platform.Event, newHandle func() S) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			Apply(s, e, newHandle)
		}
	}
}

// Apply applies a single host event to s.
func Apply[S any](s *State[S], e platform.Event, newHandle func() S) {
	switch e.Type {
	case platform.EventConnected:
		s.OnConnected(newHandle())
	case platform.EventInterrupted:
		s.OnInterrupted()
	case platform.EventUnbind:
		s.OnUnbind()
	case platform.EventWindowStateChanged:
		s.OnForegroundActivityChanged(e.ClassName)
	}
}
