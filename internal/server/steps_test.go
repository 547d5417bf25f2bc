package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRemote answers every call with fixed values.
type scriptedRemote struct {
	ok       bool
	err      error
	focused  *string
	dump     string
	activity string

	swipes [][5]int64
	texts  map[string]string
}

func (r *scriptedRemote) InterfaceDescriptor(context.Context) (string, error) { return "d", r.err }
func (r *scriptedRemote) GetUIHierarchy(context.Context) (string, error)      { return r.dump, r.err }
func (r *scriptedRemote) PerformClick(context.Context, int32, int32) (bool, error) {
	return r.ok, r.err
}
func (r *scriptedRemote) PerformLongPress(context.Context, int32, int32) (bool, error) {
	return r.ok, r.err
}
func (r *scriptedRemote) PerformGlobalAction(context.Context, int32) (bool, error) {
	return r.ok, r.err
}
func (r *scriptedRemote) PerformSwipe(_ context.Context, x1, y1, x2, y2 int32, d int64) (bool, error) {
	r.swipes = append(r.swipes, [5]int64{int64(x1), int64(y1), int64(x2), int64(y2), d})
	return r.ok, r.err
}
func (r *scriptedRemote) FindFocusedNodeID(context.Context) (*string, error) { return r.focused, r.err }
func (r *scriptedRemote) SetTextOnNode(_ context.Context, id, text string) (bool, error) {
	if r.texts == nil {
		r.texts = map[string]string{}
	}
	r.texts[id] = text
	return r.ok, r.err
}
func (r *scriptedRemote) TakeScreenshot(context.Context, string, string) (bool, error) {
	return r.ok, r.err
}
func (r *scriptedRemote) IsConnected(context.Context) (bool, error)            { return r.ok, r.err }
func (r *scriptedRemote) GetCurrentActivityName(context.Context) (string, error) { return r.activity, r.err }

func TestExecute_Rejected(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: false})
	res, err := e.Execute(context.Background(), "click", map[string]interface{}{"x": 1, "y": 2})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "(1,2)", res.Target)
}

func TestExecute_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	e := NewExecutor(&scriptedRemote{ok: true, err: boom})
	_, err := e.Execute(context.Background(), "long-press", map[string]interface{}{"x": 1, "y": 2})
	assert.ErrorIs(t, err, boom)
}

func TestExecute_CoordinateRange(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: true})
	_, err := e.Execute(context.Background(), "click", map[string]interface{}{"x": 1 << 40, "y": 2})
	assert.ErrorContains(t, err, "x out of range")

	_, err = e.Execute(context.Background(), "click", map[string]interface{}{"x": "left", "y": 2})
	assert.ErrorContains(t, err, "x must be a number")
}

func TestExecute_SwipeDefaultDuration(t *testing.T) {
	r := &scriptedRemote{ok: true}
	e := NewExecutor(r)
	_, err := e.Execute(context.Background(), "swipe", map[string]interface{}{"x1": 1, "y1": 2, "x2": 3, "y2": 4})
	require.NoError(t, err)
	assert.Equal(t, [][5]int64{{1, 2, 3, 4, 300}}, r.swipes)
}

func TestExecute_Global(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: true})
	res, err := e.Execute(context.Background(), "global", map[string]interface{}{"action": "recents"})
	require.NoError(t, err)
	assert.Equal(t, "recents", res.Target)

	_, err = e.Execute(context.Background(), "global", map[string]interface{}{"action": "explode"})
	assert.Error(t, err)
}

func TestExecute_SetText(t *testing.T) {
	focused := "[0,0][5,5]"
	r := &scriptedRemote{ok: true, focused: &focused}
	e := NewExecutor(r)

	_, err := e.Execute(context.Background(), "set-text", map[string]interface{}{"text": "a"})
	require.NoError(t, err)
	_, err = e.Execute(context.Background(), "set-text", map[string]interface{}{"node-id": "[1,1][2,2]", "text": ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"[0,0][5,5]": "a", "[1,1][2,2]": ""}, r.texts)

	_, err = e.Execute(context.Background(), "set-text", map[string]interface{}{})
	assert.ErrorContains(t, err, "text is required")

	r.focused = nil
	_, err = e.Execute(context.Background(), "set-text", map[string]interface{}{"text": "a"})
	assert.ErrorContains(t, err, "nothing is focused")
}

func TestExecute_Screenshot(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: true})
	_, err := e.Execute(context.Background(), "screenshot", map[string]interface{}{})
	assert.Error(t, err)
	_, err = e.Execute(context.Background(), "screenshot", map[string]interface{}{"path": "/tmp/x.gif", "format": "gif"})
	assert.Error(t, err)
	res, err := e.Execute(context.Background(), "screenshot", map[string]interface{}{"path": "/tmp/x.png"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.png", res.Path)
}

func TestExecute_WaitTimeout(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: true, activity: "com.example.Splash"})
	start := time.Now()
	_, err := e.Execute(context.Background(), "wait", map[string]interface{}{
		"for-activity": "Main", "timeout": 0, "interval": 10,
	})
	assert.ErrorContains(t, err, `timed out waiting for condition: activity="Main"`)
	assert.Less(t, time.Since(start), time.Second)
}

func TestExecute_WaitGone(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: true, dump: `<?xml version='1.0' ?><node class="a" text="Loading" bounds="[0,0][1,1]"/>`})
	_, err := e.Execute(context.Background(), "wait", map[string]interface{}{"for-text": "done", "gone": true})
	require.NoError(t, err)

	_, err = e.Execute(context.Background(), "wait", map[string]interface{}{})
	assert.Error(t, err)
}

func TestExecute_Read(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: true, dump: `<node class="a" bounds="[0,0][9,9]"><node class="b" text="x" bounds="[0,0][1,1]"/><node class="c" bounds="[1,1][2,2]"/></node>`})
	res, err := e.Execute(context.Background(), "read", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Elements)

	res, err = e.Execute(context.Background(), "read", map[string]interface{}{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Elements)
}

func TestExecute_Sleep(t *testing.T) {
	e := NewExecutor(&scriptedRemote{})
	_, err := e.Execute(context.Background(), "sleep", map[string]interface{}{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Execute(ctx, "sleep", map[string]interface{}{"ms": 10000})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_Unknown(t *testing.T) {
	_, err := NewExecutor(&scriptedRemote{}).Execute(context.Background(), "fly", nil)
	assert.ErrorContains(t, err, "unknown step type")
}

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps([]map[string]interface{}{
		{"click": map[string]interface{}{"x": 1, "y": 2}},
		{"focused": nil},
	})
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "click", steps[0].Action)
	assert.Equal(t, "focused", steps[1].Action)
	assert.NotNil(t, steps[1].Params)

	_, err = ParseSteps([]map[string]interface{}{{"click": 1}})
	assert.Error(t, err)
	_, err = ParseSteps([]map[string]interface{}{{"click": nil, "swipe": nil}})
	assert.Error(t, err)
}

func TestRunSteps_ContinueOnError(t *testing.T) {
	e := NewExecutor(&scriptedRemote{ok: true})
	res := e.RunSteps(context.Background(), []Step{
		{Action: "click", Params: map[string]interface{}{}},
		{Action: "global", Params: map[string]interface{}{"action": "home"}},
	}, false)
	assert.False(t, res.OK)
	assert.Equal(t, 1, res.Completed)
	require.Len(t, res.Results, 2)
	assert.Equal(t, 1, res.Results[0].Step)
	assert.True(t, res.Results[1].OK)
	assert.Contains(t, res.Error, "step 1")
}
