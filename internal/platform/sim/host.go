package sim

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/platform"
	"github.com/rs/zerolog"
)

// eventBuffer bounds the undelivered notification backlog.
const eventBuffer = 64

var errNotConnected = errors.New("simulated host is not connected")

// Host is a simulated accessibility host serving one scene.
type Host struct {
	tree   *Tree
	log    zerolog.Logger
	events chan platform.Event

	mu         sync.Mutex
	scene      *Scene
	connected  bool
	closed     bool
	gestures   []model.Gesture
	globals    []model.GlobalAction
	captureErr error
	stopWatch  func()

	captures        atomic.Int64
	releasedBitmaps atomic.Int64
}

var (
	_ platform.TreeReader      = (*Host)(nil)
	_ platform.GestureInjector = (*Host)(nil)
	_ platform.Screenshotter   = (*Host)(nil)
	_ platform.EventSource     = (*Host)(nil)
)

// NewHost creates a disconnected host showing scene (DefaultScene if nil).
func NewHost(scene *Scene, log zerolog.Logger) *Host {
	if scene == nil {
		scene = DefaultScene()
	}
	return &Host{
		tree:   NewTree(scene.Root),
		log:    logging.For(log, "sim"),
		events: make(chan platform.Event, eventBuffer),
		scene:  scene,
	}
}

// Provider bundles the host capabilities.
func (h *Host) Provider() *platform.Provider {
	h.mu.Lock()
	sdk := h.scene.SDK
	h.mu.Unlock()
	return &platform.Provider{
		Tree:       h,
		Gestures:   h,
		Screen:     h,
		Events:     h,
		SDKVersion: sdk,
		Closer:     h,
	}
}

// Tree exposes the window content for inspection.
func (h *Host) Tree() *Tree { return h.tree }

// Connect marks the service connected and announces the scene's activity.
func (h *Host) Connect() {
	h.mu.Lock()
	h.connected = true
	activity := h.scene.Activity
	h.mu.Unlock()
	h.emit(platform.Event{Type: platform.EventConnected})
	if activity != "" {
		h.emit(platform.Event{Type: platform.EventWindowStateChanged, ClassName: activity})
	}
}

// Interrupt simulates the host interrupting the service.
func (h *Host) Interrupt() {
	h.setConnected(false)
	h.emit(platform.Event{Type: platform.EventInterrupted})
}

// Unbind simulates the host unbinding the service.
func (h *Host) Unbind() {
	h.setConnected(false)
	h.emit(platform.Event{Type: platform.EventUnbind})
}

// SetActivity announces a new foreground activity without changing content.
func (h *Host) SetActivity(className string) {
	h.emit(platform.Event{Type: platform.EventWindowStateChanged, ClassName: className})
}

// LoadScene replaces the window content and announces its activity.
func (h *Host) LoadScene(s *Scene) {
	h.tree.Replace(s.Root)
	h.mu.Lock()
	h.scene = s
	h.mu.Unlock()
	h.emit(platform.Event{Type: platform.EventWindowStateChanged, ClassName: s.Activity})
}

// FailScreenshots makes subsequent captures fail with err (nil to clear).
func (h *Host) FailScreenshots(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.captureErr = err
}

// Gestures returns the gestures accepted so far.
func (h *Host) Gestures() []model.Gesture {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.Gesture(nil), h.gestures...)
}

// GlobalActions returns the global actions performed so far.
func (h *Host) GlobalActions() []model.GlobalAction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.GlobalAction(nil), h.globals...)
}

// Captures returns the number of capture requests received.
func (h *Host) Captures() int64 { return h.captures.Load() }

// ReleasedBitmaps returns the number of captured bitmaps released.
func (h *Host) ReleasedBitmaps() int64 { return h.releasedBitmaps.Load() }

// Events implements platform.EventSource.
func (h *Host) Events() <-chan platform.Event { return h.events }

// Close stops the scene watcher and closes the event stream.
func (h *Host) Close() error {
	h.mu.Lock()
	stop := h.stopWatch
	h.stopWatch = nil
	h.mu.Unlock()
	if stop != nil {
		stop()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	close(h.events)
	return nil
}

func (h *Host) setConnected(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connected = v
}

func (h *Host) isConnected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connected
}

func (h *Host) emit(e platform.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	select {
	case h.events <- e:
	default:
		h.log.Warn().Stringer("event", e.Type).Msg("event backlog full, dropping notification")
	}
}

// RootInActiveWindow implements platform.TreeReader.
func (h *Host) RootInActiveWindow() (platform.Node, error) {
	if !h.isConnected() {
		return nil, nil
	}
	return h.tree.rootHandle(), nil
}

// FindFocus implements platform.TreeReader.
func (h *Host) FindFocus(kind platform.FocusKind) (platform.Node, error) {
	if !h.isConnected() {
		return nil, nil
	}
	return h.tree.focusHandle(kind), nil
}

// DispatchGesture implements platform.GestureInjector. Short stationary
// strokes act as taps and move input focus to the editable node under them.
func (h *Host) DispatchGesture(g model.Gesture, cb platform.GestureCallback) bool {
	if !h.isConnected() || len(g.Path) == 0 || g.Duration < 0 {
		return false
	}
	for _, p := range g.Path {
		if p.X < 0 || p.Y < 0 {
			return false
		}
	}
	h.mu.Lock()
	h.gestures = append(h.gestures, g)
	h.mu.Unlock()

	if g.Stationary() && g.Duration < model.LongPressDuration {
		start := g.Start()
		h.tree.focusAt(start.X, start.Y)
	}
	if cb != nil {
		go cb.OnCompleted()
	}
	return true
}

// PerformGlobalAction implements platform.GestureInjector.
func (h *Host) PerformGlobalAction(action model.GlobalAction) bool {
	if !h.isConnected() || action < model.GlobalBack {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.globals = append(h.globals, action)
	return true
}

// TakeScreenshot implements platform.Screenshotter. The result is delivered
// on a separate goroutine.
func (h *Host) TakeScreenshot(display int, done func(platform.Screenshot, error)) {
	h.captures.Add(1)
	h.mu.Lock()
	captureErr := h.captureErr
	connected := h.connected
	screen := h.scene.Screen
	h.mu.Unlock()

	go func() {
		if !connected {
			done(platform.Screenshot{}, errNotConnected)
			return
		}
		if captureErr != nil {
			done(platform.Screenshot{}, captureErr)
			return
		}
		img := Render(h.tree.Snapshot(), screen)
		var once atomic.Bool
		done(platform.Screenshot{
			Image: img,
			Release: func() {
				if once.CompareAndSwap(false, true) {
					h.releasedBitmaps.Add(1)
				}
			},
		}, nil)
	}()
}
