// Package control implements the session-bound operations against the
// accessibility host.
package control

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mj1618/a11y-bridge/internal/capture"
	"github.com/mj1618/a11y-bridge/internal/gesture"
	"github.com/mj1618/a11y-bridge/internal/hierarchy"
	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/nodetree"
	"github.com/mj1618/a11y-bridge/internal/platform"
	"github.com/mj1618/a11y-bridge/internal/protocol"
	"github.com/rs/zerolog"
)

// Controller serves one connected session. Node handles never outlive a
// call. The capture throttle is shared by every session in the process.
type Controller struct {
	tree     platform.TreeReader
	gestures *gesture.Dispatcher
	capture  *capture.Throttle
	log      zerolog.Logger
}

var _ protocol.Operations = (*Controller)(nil)

// New returns a Controller for the host in p.
func New(p *platform.Provider, throttle *capture.Throttle, log zerolog.Logger) *Controller {
	return &Controller{
		tree:     p.Tree,
		gestures: gesture.NewDispatcher(p.Gestures, log),
		capture:  throttle,
		log:      logging.For(log, "control"),
	}
}

// GetUIHierarchy dumps the active window as XML, or "" on any failure.
func (c *Controller) GetUIHierarchy(ctx context.Context) string {
	root, err := c.tree.RootInActiveWindow()
	if err != nil {
		c.log.Error().Err(err).Msg("failed to get active window")
		return ""
	}
	if root == nil {
		return ""
	}
	xml, err := hierarchy.Serialize(root)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to serialize hierarchy")
		return ""
	}
	return xml
}

func (c *Controller) PerformClick(ctx context.Context, x, y int32) bool {
	return c.gestures.Tap(int(x), int(y))
}

func (c *Controller) PerformLongPress(ctx context.Context, x, y int32) bool {
	return c.gestures.LongPress(int(x), int(y))
}

func (c *Controller) PerformGlobalAction(ctx context.Context, action int32) bool {
	return c.gestures.GlobalAction(model.GlobalAction(action))
}

// maxSwipeMs keeps the duration representable as a time.Duration.
const maxSwipeMs = math.MaxInt64 / int64(time.Millisecond)

func (c *Controller) PerformSwipe(ctx context.Context, x1, y1, x2, y2 int32, durationMs int64) bool {
	if durationMs > maxSwipeMs {
		c.log.Warn().Int64("duration_ms", durationMs).Msg("swipe duration too large")
		return false
	}
	return c.gestures.Swipe(int(x1), int(y1), int(x2), int(y2), time.Duration(durationMs)*time.Millisecond)
}

// FindFocusedNodeID returns the bounds fingerprint of the input-focused
// node, falling back to accessibility focus, or nil if neither exists.
func (c *Controller) FindFocusedNodeID(ctx context.Context) *string {
	for _, kind := range []platform.FocusKind{platform.FocusInput, platform.FocusAccessibility} {
		n, err := c.tree.FindFocus(kind)
		if err != nil {
			c.log.Warn().Err(err).Stringer("focus", kind).Msg("focus lookup failed")
			continue
		}
		if n == nil {
			continue
		}
		fp := nodetree.Fingerprint(n)
		n.Recycle()
		return &fp
	}
	return nil
}

// SetTextOnNode replaces the text of the editable node nearest to the node
// identified by nodeID.
func (c *Controller) SetTextOnNode(ctx context.Context, nodeID, text string) bool {
	ok, err := c.setText(nodeID, text)
	if err != nil {
		c.log.Error().Err(err).Str("node", nodeID).Msg("set text failed")
		return false
	}
	return ok
}

func (c *Controller) setText(nodeID, text string) (bool, error) {
	root, err := c.tree.RootInActiveWindow()
	if err != nil {
		return false, fmt.Errorf("get active window: %w", err)
	}
	if root == nil {
		c.log.Warn().Msg("set text: no active window")
		return false, nil
	}

	container, err := nodetree.FindByFingerprint(root, nodeID)
	root.Recycle()
	if err != nil {
		return false, fmt.Errorf("find node %s: %w", nodeID, err)
	}
	if container == nil {
		c.log.Warn().Str("node", nodeID).Msg("set text: node not found")
		return false, nil
	}
	defer container.Recycle()

	editable, err := nodetree.FindNearestEditable(container)
	if err != nil {
		return false, fmt.Errorf("find editable under %s: %w", nodeID, err)
	}
	if editable == nil {
		c.log.Warn().Str("node", nodeID).Str("class", container.ClassName()).Msg("set text: no editable node")
		return false, nil
	}
	defer editable.Recycle()

	ok, err := editable.PerformAction(platform.ActionSetText, platform.ActionArgs{SetText: text})
	if err != nil {
		return false, fmt.Errorf("set text action: %w", err)
	}
	if !ok {
		c.log.Warn().
			Str("class", editable.ClassName()).
			Str("text", editable.Text()).
			Str("bounds", nodetree.Fingerprint(editable)).
			Msg("set text action rejected")
	}
	return ok, nil
}

// TakeScreenshot captures the screen to path through the shared throttle.
func (c *Controller) TakeScreenshot(ctx context.Context, path, format string) bool {
	err := c.capture.Capture(ctx, path, format)
	switch {
	case err == nil:
		return true
	case errors.Is(err, capture.ErrUnsupported):
		return false
	case errors.Is(err, capture.ErrInterrupted):
		c.log.Warn().Err(err).Str("path", path).Msg("screenshot interrupted")
	default:
		c.log.Error().Err(err).Str("path", path).Str("format", format).Msg("screenshot failed")
	}
	return false
}
