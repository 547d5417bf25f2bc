package server

import (
	"context"

	"github.com/mj1618/a11y-bridge/internal/protocol"
)

// Remote is the bridge client surface the tools drive.
type Remote interface {
	InterfaceDescriptor(ctx context.Context) (string, error)
	GetUIHierarchy(ctx context.Context) (string, error)
	PerformClick(ctx context.Context, x, y int32) (bool, error)
	PerformLongPress(ctx context.Context, x, y int32) (bool, error)
	PerformGlobalAction(ctx context.Context, action int32) (bool, error)
	PerformSwipe(ctx context.Context, x1, y1, x2, y2 int32, durationMs int64) (bool, error)
	FindFocusedNodeID(ctx context.Context) (*string, error)
	SetTextOnNode(ctx context.Context, nodeID, text string) (bool, error)
	TakeScreenshot(ctx context.Context, path, format string) (bool, error)
	IsConnected(ctx context.Context) (bool, error)
	GetCurrentActivityName(ctx context.Context) (string, error)
}

var _ Remote = (*protocol.Proxy)(nil)
