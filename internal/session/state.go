// Package session tracks whether the accessibility service is connected,
// which session is active, and the current foreground activity.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/rs/zerolog"
)

// Session is one connected period of the accessibility service. Handle is
// whatever serves operations for that period.
type Session[S any] struct {
	ID          string
	ConnectedAt time.Time
	Handle      S
}

// State is the process-wide connectivity record. Reads never block; the
// lifecycle methods are expected to be called from one goroutine at a time.
type State[S any] struct {
	connected atomic.Bool
	active    atomic.Pointer[Session[S]]
	activity  atomic.Pointer[string]
	log       zerolog.Logger

	mu        sync.Mutex
	listeners []func(connected bool)
}

// NewState returns a disconnected State.
func NewState[S any](log zerolog.Logger) *State[S] {
	s := &State[S]{log: logging.For(log, "session")}
	empty := ""
	s.activity.Store(&empty)
	return s
}

// Connected reports whether a session is live.
func (s *State[S]) Connected() bool { return s.connected.Load() }

// Active returns the live session, or nil. Callers must check Connected
// first; a non-nil result while disconnected is stale.
func (s *State[S]) Active() *Session[S] { return s.active.Load() }

// Activity returns the last recorded foreground activity.
func (s *State[S]) Activity() string { return *s.activity.Load() }

// Subscribe registers fn to be called after every connectivity change.
func (s *State[S]) Subscribe(fn func(connected bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// OnConnected starts a new session served by handle and clears the
// recorded activity.
func (s *State[S]) OnConnected(handle S) *Session[S] {
	sess := &Session[S]{ID: uuid.NewString(), ConnectedAt: time.Now(), Handle: handle}
	s.setActivity("")
	s.active.Store(sess)
	was := s.connected.Swap(true)
	s.log.Info().Str("session", sess.ID).Msg("accessibility service connected")
	if !was {
		s.notify(true)
	}
	return sess
}

// OnInterrupted ends the current session.
func (s *State[S]) OnInterrupted() { s.disconnect("interrupted") }

// OnUnbind ends the current session.
func (s *State[S]) OnUnbind() { s.disconnect("unbound") }

// OnForegroundActivityChanged records the new foreground activity. Empty
// names are ignored.
func (s *State[S]) OnForegroundActivityChanged(name string) {
	if name == "" {
		return
	}
	if s.Activity() == name {
		return
	}
	s.setActivity(name)
	s.log.Debug().Str("activity", name).Msg("foreground activity changed")
}

func (s *State[S]) disconnect(reason string) {
	was := s.connected.Swap(false)
	prev := s.active.Swap(nil)
	s.setActivity("")
	if !was {
		return
	}
	ev := s.log.Info().Str("reason", reason)
	if prev != nil {
		ev = ev.Str("session", prev.ID).Dur("uptime", time.Since(prev.ConnectedAt))
	}
	ev.Msg("accessibility service disconnected")
	s.notify(false)
}

func (s *State[S]) setActivity(name string) {
	s.activity.Store(&name)
}

func (s *State[S]) notify(connected bool) {
	s.mu.Lock()
	listeners := append(([]func(bool))(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(connected)
	}
}
