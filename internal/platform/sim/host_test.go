package sim

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCallback struct {
	done chan string
}

func (c *recordingCallback) OnCompleted() { c.done <- "completed" }
func (c *recordingCallback) OnCancelled() { c.done <- "cancelled" }

func nextEvent(t *testing.T, h *Host) platform.Event {
	t.Helper()
	select {
	case e := <-h.Events():
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return platform.Event{}
	}
}

func TestHost_LifecycleEvents(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	defer h.Close()

	h.Connect()
	assert.Equal(t, platform.EventConnected, nextEvent(t, h).Type)
	e := nextEvent(t, h)
	assert.Equal(t, platform.EventWindowStateChanged, e.Type)
	assert.Equal(t, "com.example.launcher.HomeActivity", e.ClassName)

	h.SetActivity("com.example.Settings")
	assert.Equal(t, "com.example.Settings", nextEvent(t, h).ClassName)

	h.Interrupt()
	assert.Equal(t, platform.EventInterrupted, nextEvent(t, h).Type)
	h.Unbind()
	assert.Equal(t, platform.EventUnbind, nextEvent(t, h).Type)
}

func TestHost_DisconnectedRefusesWork(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	defer h.Close()

	root, err := h.RootInActiveWindow()
	require.NoError(t, err)
	assert.Nil(t, root)
	assert.False(t, h.DispatchGesture(model.Tap(1, 1), nil))
	assert.False(t, h.PerformGlobalAction(model.GlobalHome))
	assert.Empty(t, h.Gestures())
}

func TestHost_TapFocusesEditable(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	defer h.Close()
	h.Connect()

	cb := &recordingCallback{done: make(chan string, 1)}
	require.True(t, h.DispatchGesture(model.Tap(100, 200), cb))
	select {
	case got := <-cb.done:
		assert.Equal(t, "completed", got)
	case <-time.After(time.Second):
		t.Fatal("callback not invoked")
	}

	focus, err := h.FindFocus(platform.FocusInput)
	require.NoError(t, err)
	require.NotNil(t, focus)
	defer focus.Recycle()
	assert.Equal(t, "com.example.launcher:id/search_input", focus.ViewIDResourceName())
	assert.Len(t, h.Gestures(), 1)
}

func TestHost_LongPressDoesNotFocus(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	defer h.Close()
	h.Connect()

	require.True(t, h.DispatchGesture(model.LongPress(100, 200), nil))
	focus, _ := h.FindFocus(platform.FocusInput)
	assert.Nil(t, focus)
}

func TestHost_RejectsNegativeCoordinates(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	defer h.Close()
	h.Connect()

	assert.False(t, h.DispatchGesture(model.Tap(-1, 5), nil))
	assert.False(t, h.DispatchGesture(model.Gesture{}, nil))
	assert.False(t, h.PerformGlobalAction(0))
	assert.True(t, h.PerformGlobalAction(model.GlobalBack))
	assert.Equal(t, []model.GlobalAction{model.GlobalBack}, h.GlobalActions())
}

func TestHost_TakeScreenshot(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	defer h.Close()
	h.Connect()

	var (
		wg   sync.WaitGroup
		shot platform.Screenshot
		err  error
	)
	wg.Add(1)
	h.TakeScreenshot(0, func(s platform.Screenshot, e error) {
		shot, err = s, e
		wg.Done()
	})
	wg.Wait()
	require.NoError(t, err)
	require.NotNil(t, shot.Image)
	assert.Equal(t, image.Rect(0, 0, 1080, 2400), shot.Image.Bounds())
	shot.Release()
	shot.Release()
	assert.Equal(t, int64(1), h.Captures())
	assert.Equal(t, int64(1), h.ReleasedBitmaps())
}

func TestHost_TakeScreenshotFailure(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	defer h.Close()
	h.Connect()
	boom := errors.New("capture failed")
	h.FailScreenshots(boom)

	errCh := make(chan error, 1)
	h.TakeScreenshot(0, func(_ platform.Screenshot, e error) { errCh <- e })
	assert.ErrorIs(t, <-errCh, boom)
}

func TestHost_CloseIsIdempotent(t *testing.T) {
	h := NewHost(nil, zerolog.Nop())
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	h.Connect() // emits after close are dropped
	_, ok := <-h.Events()
	assert.False(t, ok)
}

func TestHost_ProviderReportsSceneSDK(t *testing.T) {
	s := DefaultScene()
	s.SDK = 29
	h := NewHost(s, zerolog.Nop())
	defer h.Close()
	p := h.Provider()
	assert.Equal(t, 29, p.SDKVersion)
	assert.False(t, p.SupportsScreenshot())
}
