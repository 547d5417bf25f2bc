// Package server exposes the bridge operations as Model Context Protocol
// tools, backed by a bridge client.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/version"
	"github.com/rs/zerolog"
)

// Options configures a Server.
type Options struct {
	// Address is the bridge address, reported by the status tool.
	Address string
	// CacheTTL bounds how long a hierarchy dump is reused (0 disables).
	CacheTTL time.Duration
	// Timeout bounds each tool call.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Server wraps the MCP server with the bridge client and cache.
type Server struct {
	remote Remote
	exec   *Executor
	cache  *TreeCache
	opts   Options
	log    zerolog.Logger
	mcp    *mcpserver.MCPServer

	// remoteMu serializes tool calls; last is guarded by it.
	remoteMu sync.Mutex
	// last is the most recent full hierarchy returned, for diffs.
	last []model.FlatElement
}

// New creates and configures an MCP server with all bridge tools.
func New(remote Remote, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	s := &Server{
		remote: remote,
		exec:   NewExecutor(remote),
		cache:  NewTreeCache(opts.CacheTTL),
		opts:   opts,
		log:    logging.For(opts.Logger, "mcp"),
	}
	s.mcp = mcpserver.NewMCPServer("a11y-bridge", version.Version)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the given transport.
func (s *Server) Serve(transport string, port int) error {
	s.log.Info().Str("transport", transport).Str("bridge", s.opts.Address).Msg("serving MCP")
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *Server) registerTools() {
	// hierarchy
	s.mcp.AddTool(
		mcp.NewTool("hierarchy",
			mcp.WithDescription("Read the active window's UI hierarchy. Returns nodes with class, text, content-desc, resource-id, bounds, clickable and focused."),
			mcp.WithString("format", mcp.Description("Output format: yaml, json, xml (default: yaml)")),
			mcp.WithString("text", mcp.Description("Only keep nodes whose text, content-desc or resource-id contains this")),
			mcp.WithBoolean("focused", mcp.Description("Only keep the focused node and its ancestors")),
			mcp.WithBoolean("prune", mcp.Description("Drop anonymous layout containers")),
			mcp.WithBoolean("flat", mcp.Description("Return a flat list with path breadcrumbs")),
			mcp.WithBoolean("diff", mcp.Description("Return only changes since the previous hierarchy call")),
		),
		s.handleHierarchy,
	)

	// click
	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Tap at screen coordinates"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
		),
		s.handleClick,
	)

	// long_press
	s.mcp.AddTool(
		mcp.NewTool("long_press",
			mcp.WithDescription("Press and hold at screen coordinates"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
		),
		s.handleLongPress,
	)

	// swipe
	s.mcp.AddTool(
		mcp.NewTool("swipe",
			mcp.WithDescription("Swipe in a straight line between two points"),
			mcp.WithNumber("x1", mcp.Description("Start X"), mcp.Required()),
			mcp.WithNumber("y1", mcp.Description("Start Y"), mcp.Required()),
			mcp.WithNumber("x2", mcp.Description("End X"), mcp.Required()),
			mcp.WithNumber("y2", mcp.Description("End Y"), mcp.Required()),
			mcp.WithNumber("duration", mcp.Description("Stroke duration in ms (default: 300)")),
		),
		s.handleSwipe,
	)

	// global_action
	s.mcp.AddTool(
		mcp.NewTool("global_action",
			mcp.WithDescription("Perform a system action: back, home, recents, notifications, quick-settings, power-dialog, or a numeric id"),
			mcp.WithString("action", mcp.Description("Action name or id"), mcp.Required()),
		),
		s.handleGlobalAction,
	)

	// focused_node
	s.mcp.AddTool(
		mcp.NewTool("focused_node",
			mcp.WithDescription("Return the fingerprint id of the node holding input or accessibility focus"),
		),
		s.handleFocused,
	)

	// set_text
	s.mcp.AddTool(
		mcp.NewTool("set_text",
			mcp.WithDescription("Replace the text of an editable node. Targets the focused node when node-id is omitted; a non-editable target falls back to its nearest editable relative."),
			mcp.WithString("node-id", mcp.Description("Fingerprint id from focused_node")),
			mcp.WithString("text", mcp.Description("New text"), mcp.Required()),
		),
		s.handleSetText,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the screen. Returns the image unless path is given, in which case the bridge writes the file there."),
			mcp.WithString("format", mcp.Description("Image format: png, jpeg (default: png)")),
			mcp.WithString("path", mcp.Description("File path on the bridge host")),
		),
		s.handleScreenshot,
	)

	// wait
	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait for text to appear (or disappear) or for an activity to come to the foreground"),
			mcp.WithString("for-text", mcp.Description("Wait for a node with this text")),
			mcp.WithString("for-activity", mcp.Description("Wait for the foreground activity to contain this")),
			mcp.WithBoolean("gone", mcp.Description("Wait until the condition is NO LONGER true")),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default: 30)")),
			mcp.WithNumber("interval", mcp.Description("Polling interval in ms (default: 500)")),
		),
		s.handleWait,
	)

	// status
	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report whether the accessibility service is connected and the current foreground activity"),
		),
		s.handleStatus,
	)

	// do (batch)
	s.mcp.AddTool(
		mcp.NewTool("do",
			mcp.WithDescription("Execute multiple steps in a batch, e.g. [{\"click\": {\"x\": 10, \"y\": 20}}, {\"set-text\": {\"text\": \"hi\"}}]. Supports: click, long-press, swipe, global, set-text, screenshot, focused, read, wait, sleep"),
			mcp.WithArray("steps", mcp.Description("Array of step objects"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)")),
		),
		s.handleDo,
	)
}
