package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mj1618/a11y-bridge/internal/capture"
	"github.com/mj1618/a11y-bridge/internal/hierarchy"
	"github.com/mj1618/a11y-bridge/internal/model"
)

// StepResult is the output for a single step within a batch.
type StepResult struct {
	Step     int    `yaml:"step,omitempty"     json:"step,omitempty"`
	OK       bool   `yaml:"ok"                 json:"ok"`
	Action   string `yaml:"action"             json:"action"`
	Error    string `yaml:"error,omitempty"    json:"error,omitempty"`
	Target   string `yaml:"target,omitempty"   json:"target,omitempty"`
	Text     string `yaml:"text,omitempty"     json:"text,omitempty"`
	Path     string `yaml:"path,omitempty"     json:"path,omitempty"`
	Elapsed  string `yaml:"elapsed,omitempty"  json:"elapsed,omitempty"`
	Match    string `yaml:"match,omitempty"    json:"match,omitempty"`
	Elements int    `yaml:"elements,omitempty" json:"elements,omitempty"`
}

// ErrRejected is returned when the bridge reports an operation as failed.
// The bridge folds every failure into false, so there is no further detail.
var ErrRejected = errors.New("rejected by the accessibility service")

// StepTypes lists the supported batch step names.
var StepTypes = []string{"click", "long-press", "swipe", "global", "set-text", "screenshot", "focused", "read", "wait", "sleep"}

// Executor runs single named steps against a bridge.
type Executor struct {
	remote Remote
}

// NewExecutor returns an Executor driving remote.
func NewExecutor(remote Remote) *Executor {
	return &Executor{remote: remote}
}

// IsWrite reports whether action may change the screen.
func IsWrite(action string) bool {
	switch action {
	case "click", "long-press", "swipe", "global", "set-text":
		return true
	}
	return false
}

// Execute runs one step.
func (e *Executor) Execute(ctx context.Context, action string, params map[string]interface{}) (StepResult, error) {
	switch action {
	case "click":
		return e.point(ctx, action, params, e.remote.PerformClick)
	case "long-press":
		return e.point(ctx, action, params, e.remote.PerformLongPress)
	case "swipe":
		return e.swipe(ctx, params)
	case "global":
		return e.global(ctx, params)
	case "set-text":
		return e.setText(ctx, params)
	case "screenshot":
		return e.screenshot(ctx, params)
	case "focused":
		return e.focused(ctx)
	case "read":
		return e.read(ctx, params)
	case "wait":
		return e.wait(ctx, params)
	case "sleep":
		return executeSleep(ctx, params)
	default:
		return StepResult{Action: action}, fmt.Errorf("unknown step type %q (supported: %s)", action, strings.Join(StepTypes, ", "))
	}
}

func (e *Executor) point(ctx context.Context, action string, params map[string]interface{}, fn func(context.Context, int32, int32) (bool, error)) (StepResult, error) {
	res := StepResult{Action: action}
	x, err := int32Param(params, "x")
	if err != nil {
		return res, err
	}
	y, err := int32Param(params, "y")
	if err != nil {
		return res, err
	}
	res.Target = fmt.Sprintf("(%d,%d)", x, y)
	return res, accepted(fn(ctx, x, y))
}

func (e *Executor) swipe(ctx context.Context, params map[string]interface{}) (StepResult, error) {
	res := StepResult{Action: "swipe"}
	var pts [4]int32
	for i, key := range []string{"x1", "y1", "x2", "y2"} {
		v, err := int32Param(params, key)
		if err != nil {
			return res, err
		}
		pts[i] = v
	}
	duration := IntParam(params, "duration", 300)
	res.Target = fmt.Sprintf("(%d,%d)->(%d,%d)", pts[0], pts[1], pts[2], pts[3])
	return res, accepted(e.remote.PerformSwipe(ctx, pts[0], pts[1], pts[2], pts[3], int64(duration)))
}

func (e *Executor) global(ctx context.Context, params map[string]interface{}) (StepResult, error) {
	res := StepResult{Action: "global"}
	a, err := model.ParseGlobalAction(StringParam(params, "action", ""))
	if err != nil {
		return res, err
	}
	res.Target = a.String()
	return res, accepted(e.remote.PerformGlobalAction(ctx, int32(a)))
}

// setText targets node-id, or the focused node when none is given.
func (e *Executor) setText(ctx context.Context, params map[string]interface{}) (StepResult, error) {
	res := StepResult{Action: "set-text"}
	text, ok := params["text"]
	if !ok {
		return res, fmt.Errorf("text is required")
	}
	res.Text = fmt.Sprintf("%v", text)

	nodeID := StringParam(params, "node-id", "")
	if nodeID == "" {
		id, err := e.remote.FindFocusedNodeID(ctx)
		if err != nil {
			return res, err
		}
		if id == nil {
			return res, fmt.Errorf("no node-id given and nothing is focused")
		}
		nodeID = *id
	}
	res.Target = nodeID
	return res, accepted(e.remote.SetTextOnNode(ctx, nodeID, res.Text))
}

func (e *Executor) screenshot(ctx context.Context, params map[string]interface{}) (StepResult, error) {
	res := StepResult{Action: "screenshot"}
	path := StringParam(params, "path", "")
	if path == "" {
		return res, capture.ErrNoPath
	}
	format := StringParam(params, "format", string(capture.FormatPNG))
	if _, err := capture.ParseFormat(format); err != nil {
		return res, err
	}
	res.Path = path
	return res, accepted(e.remote.TakeScreenshot(ctx, path, format))
}

func (e *Executor) focused(ctx context.Context) (StepResult, error) {
	res := StepResult{Action: "focused"}
	id, err := e.remote.FindFocusedNodeID(ctx)
	if err != nil {
		return res, err
	}
	if id == nil {
		return res, fmt.Errorf("nothing is focused")
	}
	res.Target = *id
	return res, nil
}

func (e *Executor) read(ctx context.Context, params map[string]interface{}) (StepResult, error) {
	res := StepResult{Action: "read"}
	root, err := e.fetch(ctx)
	if err != nil {
		return res, err
	}
	elements := []model.Element{root}
	if text := StringParam(params, "text", ""); text != "" {
		elements = model.FilterByText(elements, text)
	}
	res.Elements = len(model.FlattenElements(elements))
	return res, nil
}

func (e *Executor) wait(ctx context.Context, params map[string]interface{}) (StepResult, error) {
	res := StepResult{Action: "wait"}
	forText := StringParam(params, "for-text", "")
	forActivity := StringParam(params, "for-activity", "")
	gone := BoolParam(params, "gone", false)
	timeout := time.Duration(IntParam(params, "timeout", 30)) * time.Second
	interval := time.Duration(IntParam(params, "interval", 500)) * time.Millisecond

	if forText == "" && forActivity == "" {
		return res, fmt.Errorf("specify at least one condition: for-text or for-activity")
	}
	res.Match = describeCondition(forText, forActivity, gone)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()

	for {
		matched, err := e.checkCondition(ctx, forText, forActivity)
		if err == nil && matched != gone {
			res.Elapsed = fmt.Sprintf("%.1fs", time.Since(start).Seconds())
			return res, nil
		}

		select {
		case <-ctx.Done():
			if err != nil {
				return res, fmt.Errorf("timeout after %s (last error: %w)", timeout, err)
			}
			return res, fmt.Errorf("timed out waiting for condition: %s", res.Match)
		case <-time.After(interval):
		}
	}
}

func (e *Executor) checkCondition(ctx context.Context, forText, forActivity string) (bool, error) {
	if forActivity != "" {
		activity, err := e.remote.GetCurrentActivityName(ctx)
		if err != nil {
			return false, err
		}
		if !strings.Contains(activity, forActivity) {
			return false, nil
		}
	}
	if forText != "" {
		root, err := e.fetch(ctx)
		if errors.Is(err, hierarchy.ErrEmpty) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return len(model.FilterByText([]model.Element{root}, forText)) > 0, nil
	}
	return true, nil
}

func (e *Executor) fetch(ctx context.Context) (model.Element, error) {
	dump, err := e.remote.GetUIHierarchy(ctx)
	if err != nil {
		return model.Element{}, err
	}
	return hierarchy.Parse(dump)
}

func describeCondition(forText, forActivity string, gone bool) string {
	var parts []string
	if forText != "" {
		parts = append(parts, fmt.Sprintf("text=%q", forText))
	}
	if forActivity != "" {
		parts = append(parts, fmt.Sprintf("activity=%q", forActivity))
	}
	desc := strings.Join(parts, " ")
	if gone {
		desc += " gone"
	}
	return desc
}

func executeSleep(ctx context.Context, params map[string]interface{}) (StepResult, error) {
	res := StepResult{Action: "sleep"}
	ms := IntParam(params, "ms", 0)
	if ms <= 0 {
		return res, fmt.Errorf("ms must be > 0")
	}
	select {
	case <-ctx.Done():
		return res, ctx.Err()
	case <-time.After(time.Duration(ms) * time.Millisecond):
	}
	res.Elapsed = fmt.Sprintf("%dms", ms)
	return res, nil
}

func accepted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrRejected
	}
	return nil
}

func int32Param(params map[string]interface{}, key string) (int32, error) {
	n, err := requireInt(params, key)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%s out of range: %d", key, n)
	}
	return int32(n), nil
}
