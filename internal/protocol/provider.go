package protocol

import "context"

// Operations are the calls served by a live accessibility session. Every
// method is total: failures surface as false, "" or nil.
type Operations interface {
	GetUIHierarchy(ctx context.Context) string
	PerformClick(ctx context.Context, x, y int32) bool
	PerformLongPress(ctx context.Context, x, y int32) bool
	PerformGlobalAction(ctx context.Context, action int32) bool
	PerformSwipe(ctx context.Context, x1, y1, x2, y2 int32, durationMs int64) bool
	// FindFocusedNodeID returns the focused node's bounds fingerprint, or
	// nil when nothing has focus.
	FindFocusedNodeID(ctx context.Context) *string
	SetTextOnNode(ctx context.Context, nodeID, text string) bool
	TakeScreenshot(ctx context.Context, path, format string) bool
}

// Provider is the full operation table served by the Stub.
type Provider interface {
	Operations
	IsConnected(ctx context.Context) bool
	GetCurrentActivityName(ctx context.Context) string
}
