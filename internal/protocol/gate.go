package protocol

import (
	"context"

	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/session"
	"github.com/rs/zerolog"
)

// Gate serves the operation table from whichever session is live. When no
// session is connected every operation logs a warning and returns its safe
// default without touching the host.
type Gate struct {
	state *session.State[Operations]
	log   zerolog.Logger
}

var _ Provider = (*Gate)(nil)

// NewGate returns a Gate reading connectivity from state.
func NewGate(state *session.State[Operations], log zerolog.Logger) *Gate {
	return &Gate{state: state, log: logging.For(log, "gate")}
}

// active returns the live session's operations, or nil.
func (g *Gate) active(op Code) Operations {
	if !g.state.Connected() {
		g.log.Warn().Stringer("op", op).Msg("accessibility service not connected")
		return nil
	}
	sess := g.state.Active()
	if sess == nil {
		g.log.Warn().Stringer("op", op).Msg("accessibility session ended during call")
		return nil
	}
	return sess.Handle
}

func (g *Gate) GetUIHierarchy(ctx context.Context) string {
	ops := g.active(OpGetUIHierarchy)
	if ops == nil {
		return ""
	}
	return ops.GetUIHierarchy(ctx)
}

func (g *Gate) PerformClick(ctx context.Context, x, y int32) bool {
	ops := g.active(OpPerformClick)
	return ops != nil && ops.PerformClick(ctx, x, y)
}

func (g *Gate) PerformLongPress(ctx context.Context, x, y int32) bool {
	ops := g.active(OpPerformLongPress)
	return ops != nil && ops.PerformLongPress(ctx, x, y)
}

func (g *Gate) PerformGlobalAction(ctx context.Context, action int32) bool {
	ops := g.active(OpPerformGlobalAction)
	return ops != nil && ops.PerformGlobalAction(ctx, action)
}

func (g *Gate) PerformSwipe(ctx context.Context, x1, y1, x2, y2 int32, durationMs int64) bool {
	ops := g.active(OpPerformSwipe)
	return ops != nil && ops.PerformSwipe(ctx, x1, y1, x2, y2, durationMs)
}

func (g *Gate) FindFocusedNodeID(ctx context.Context) *string {
	ops := g.active(OpFindFocusedNodeID)
	if ops == nil {
		return nil
	}
	return ops.FindFocusedNodeID(ctx)
}

func (g *Gate) SetTextOnNode(ctx context.Context, nodeID, text string) bool {
	ops := g.active(OpSetTextOnNode)
	return ops != nil && ops.SetTextOnNode(ctx, nodeID, text)
}

func (g *Gate) TakeScreenshot(ctx context.Context, path, format string) bool {
	ops := g.active(OpTakeScreenshot)
	return ops != nil && ops.TakeScreenshot(ctx, path, format)
}

// IsConnected reports connectivity without logging.
func (g *Gate) IsConnected(context.Context) bool {
	return g.state.Connected()
}

// GetCurrentActivityName returns the last foreground activity, or "" when
// disconnected.
func (g *Gate) GetCurrentActivityName(context.Context) string {
	if !g.state.Connected() {
		g.log.Warn().Stringer("op", OpGetCurrentActivityName).Msg("accessibility service not connected")
		return ""
	}
	return g.state.Activity()
}
