package protocol

import (
	"context"
	"fmt"
	"sync"
)

// fakeOps records every call and returns canned results.
type fakeOps struct {
	mu      sync.Mutex
	calls   []string
	result  bool
	xml     string
	focused *string
}

func (f *fakeOps) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeOps) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeOps) GetUIHierarchy(context.Context) string {
	f.record("getUiHierarchy")
	return f.xml
}

func (f *fakeOps) PerformClick(_ context.Context, x, y int32) bool {
	f.record("click %d %d", x, y)
	return f.result
}

func (f *fakeOps) PerformLongPress(_ context.Context, x, y int32) bool {
	f.record("longPress %d %d", x, y)
	return f.result
}

func (f *fakeOps) PerformGlobalAction(_ context.Context, action int32) bool {
	f.record("global %d", action)
	return f.result
}

func (f *fakeOps) PerformSwipe(_ context.Context, x1, y1, x2, y2 int32, d int64) bool {
	f.record("swipe %d %d %d %d %d", x1, y1, x2, y2, d)
	return f.result
}

func (f *fakeOps) FindFocusedNodeID(context.Context) *string {
	f.record("focused")
	return f.focused
}

func (f *fakeOps) SetTextOnNode(_ context.Context, nodeID, text string) bool {
	f.record("setText %s %s", nodeID, text)
	return f.result
}

func (f *fakeOps) TakeScreenshot(_ context.Context, path, format string) bool {
	f.record("screenshot %s %s", path, format)
	return f.result
}

// fakeProvider adds the session-level queries to fakeOps.
type fakeProvider struct {
	fakeOps
	connected bool
	activity  string
}

func (f *fakeProvider) IsConnected(context.Context) bool { return f.connected }

func (f *fakeProvider) GetCurrentActivityName(context.Context) string { return f.activity }
