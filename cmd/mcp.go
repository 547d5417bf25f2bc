package cmd

import (
	"github.com/mj1618/a11y-bridge/internal/config"
	"github.com/mj1618/a11y-bridge/internal/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the bridge as tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes every bridge
operation as a tool. AI agents can call tools directly without shell overhead.

The MCP server is a client of a running "a11y-bridge serve".

Supported transports:
  stdio             Standard I/O (default, for local MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  a11y-bridge mcp
  a11y-bridge mcp --transport streamable-http --port 8080
  a11y-bridge mcp --cache-ttl 0`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	mcpCmd.Flags().Duration("cache-ttl", settings.GetDuration(config.KeyMCPCacheTTL), "Hierarchy cache TTL (0 to disable)")

	settings.BindPFlag(config.KeyMCPTransport, mcpCmd.Flags().Lookup("transport"))
	settings.BindPFlag(config.KeyMCPPort, mcpCmd.Flags().Lookup("port"))
	settings.BindPFlag(config.KeyMCPCacheTTL, mcpCmd.Flags().Lookup("cache-ttl"))
}

func runMCP(cmd *cobra.Command, args []string) error {
	c, proxy, err := dialBridge()
	if err != nil {
		return err
	}
	defer c.Close()

	srv := server.New(proxy, server.Options{
		Address:  cfg.Listen,
		CacheTTL: cfg.MCP.CacheTTL,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	})
	return srv.Serve(cfg.MCP.Transport, cfg.MCP.Port)
}
