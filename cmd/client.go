package cmd

import (
	"fmt"

	"github.com/mj1618/a11y-bridge/internal/output"
	"github.com/mj1618/a11y-bridge/internal/protocol"
	"github.com/mj1618/a11y-bridge/internal/server"
	"github.com/mj1618/a11y-bridge/internal/transport"
	"github.com/spf13/cobra"
)

// dialBridge connects to the configured bridge address.
func dialBridge() (*transport.Client, *protocol.Proxy, error) {
	c, err := transport.Dial(cfg.Listen)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to bridge at %s: %w", cfg.Listen, err)
	}
	return c, protocol.NewProxy(c), nil
}

// runStep executes one named step against the bridge and prints its result.
func runStep(cmd *cobra.Command, action string, params map[string]interface{}) error {
	c, proxy, err := dialBridge()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := callContext(cmd)
	defer cancel()

	result, err := server.NewExecutor(proxy).Execute(ctx, action, params)
	if err != nil {
		result.Error = err.Error()
		output.Print(result)
		return fmt.Errorf("%s: %w", action, err)
	}
	result.OK = true
	return output.Print(result)
}
