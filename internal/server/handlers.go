package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/a11y-bridge/internal/capture"
	"github.com/mj1618/a11y-bridge/internal/hierarchy"
	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/output"
	"gopkg.in/yaml.v3"
)

// resultToText serializes a StepResult to YAML for MCP response.
func resultToText(result StepResult) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\naction: %s\nerror: %s", result.OK, result.Action, result.Error)
	}
	return string(b)
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.Timeout)
}

// stepHandler runs one executor step. Write steps invalidate the cache.
func (s *Server) stepHandler(ctx context.Context, request mcp.CallToolRequest, action string) (*mcp.CallToolResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.remoteMu.Lock()
	defer s.remoteMu.Unlock()

	result, err := s.exec.Execute(ctx, action, request.GetArguments())
	if IsWrite(action) {
		s.cache.InvalidateAll()
	}
	if err != nil {
		result.OK = false
		result.Error = err.Error()
		s.log.Debug().Str("tool", action).Err(err).Msg("step failed")
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	result.OK = true
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(ctx, request, "click")
}

func (s *Server) handleLongPress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(ctx, request, "long-press")
}

func (s *Server) handleSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(ctx, request, "swipe")
}

func (s *Server) handleGlobalAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(ctx, request, "global")
}

func (s *Server) handleFocused(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(ctx, request, "focused")
}

func (s *Server) handleSetText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(ctx, request, "set-text")
}

// handleWait is not bounded by the per-call timeout; the step has its own.
func (s *Server) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.exec.Execute(ctx, "wait", request.GetArguments())
	if err != nil {
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	result.OK = true
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleHierarchy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	format := StringParam(params, "format", "yaml")
	text := StringParam(params, "text", "")
	focused := BoolParam(params, "focused", false)
	prune := BoolParam(params, "prune", false)
	flat := BoolParam(params, "flat", false)
	diff := BoolParam(params, "diff", false)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.remoteMu.Lock()
	defer s.remoteMu.Unlock()

	activity, err := s.remote.GetCurrentActivityName(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dump, err := s.cache.Read(ctx, activity, s.remote.GetUIHierarchy)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if dump == "" {
		return mcp.NewToolResultError("no active window (is the accessibility service connected?)"), nil
	}
	if format == "xml" {
		return mcp.NewToolResultText(dump), nil
	}
	outFormat, err := output.ParseFormat(format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	root, err := hierarchy.Parse(dump)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	elements := []model.Element{root}

	if diff {
		all := model.FlattenElements(elements)
		changes := model.DiffElements(s.last, all)
		s.last = all
		if changes == nil {
			changes = []model.UIChange{}
		}
		return encodeResult(outFormat, changes)
	}
	s.last = model.FlattenElements(elements)

	if prune {
		elements = model.PruneAnonymous(elements)
	}
	if text != "" {
		elements = model.FilterByText(elements, text)
	}
	if focused {
		elements = model.FilterByFocused(elements)
	}

	if flat {
		return encodeResult(outFormat, output.HierarchyFlatResult{
			Activity: activity,
			TS:       time.Now().Unix(),
			Elements: model.FlattenElements(elements),
		})
	}
	if elements == nil {
		elements = []model.Element{}
	}
	return encodeResult(outFormat, output.HierarchyResult{
		Activity: activity,
		TS:       time.Now().Unix(),
		Elements: elements,
	})
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	format := StringParam(params, "format", string(capture.FormatPNG))
	path := StringParam(params, "path", "")

	f, err := capture.ParseFormat(format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if path != "" {
		return s.stepHandler(ctx, request, "screenshot")
	}

	tmp, err := os.CreateTemp("", "a11y-bridge-*."+string(f))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.remoteMu.Lock()
	ok, err := s.remote.TakeScreenshot(ctx, tmp.Name(), string(f))
	s.remoteMu.Unlock()
	if err := accepted(ok, err); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("screenshot failed: %v", err)), nil
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(data) == 0 {
		return mcp.NewToolResultError("screenshot failed: the bridge wrote no data (is it on another host? pass path)"), nil
	}

	mimeType := "image/png"
	if f == capture.FormatJPEG {
		mimeType = "image/jpeg"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: mimeType,
			},
		},
	}, nil
}

func (s *Server) handleStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.remoteMu.Lock()
	defer s.remoteMu.Unlock()

	st, err := Status(ctx, s.remote)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st.Address = s.opts.Address
	return encodeResult(output.FormatYAML, st)
}

func (s *Server) handleDo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	stopOnError := BoolParam(params, "stop-on-error", true)

	stepsRaw, ok := params["steps"]
	if !ok {
		return mcp.NewToolResultError("steps parameter is required"), nil
	}
	arr, ok := stepsRaw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}
	raw := make([]map[string]interface{}, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("each step must be an object"), nil
		}
		raw = append(raw, m)
	}
	steps, err := ParseSteps(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.remoteMu.Lock()
	defer s.remoteMu.Unlock()

	result := s.exec.RunSteps(ctx, steps, stopOnError)
	s.cache.InvalidateAll()

	b, _ := yaml.Marshal(result)
	if !result.OK {
		return mcp.NewToolResultError(string(b)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// Status queries the bridge's descriptor, connection and foreground activity.
func Status(ctx context.Context, remote Remote) (output.StatusResult, error) {
	var st output.StatusResult
	desc, err := remote.InterfaceDescriptor(ctx)
	if err != nil {
		return st, err
	}
	connected, err := remote.IsConnected(ctx)
	if err != nil {
		return st, err
	}
	activity, err := remote.GetCurrentActivityName(ctx)
	if err != nil {
		return st, err
	}
	st.Descriptor = desc
	st.Connected = connected
	st.Activity = activity
	return st, nil
}

func encodeResult(f output.Format, v interface{}) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case output.FormatJSON:
		err = output.WriteJSON(&buf, v, false)
	default:
		err = output.WriteYAML(&buf, v)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
