package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/a11y-bridge/internal/output"
	"github.com/mj1618/a11y-bridge/internal/server"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Execute multiple actions in a batch",
	Long: `Execute a sequence of actions from a YAML list on stdin.

Each step is a step name with its parameters as a map. Steps execute
sequentially, and by default execution stops on the first error.

Supported step types: click, long-press, swipe, global, set-text, screenshot,
focused, read, wait, sleep

Example:
  a11y-bridge do <<'EOF'
  - click: { x: 540, y: 190 }
  - set-text: { text: "weather" }
  - global: { action: back }
  - wait: { for-text: "Forecast", timeout: 10 }
  EOF`,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}

// stepsInput is where runDo reads steps from. Tests swap it.
var stepsInput io.Reader = os.Stdin

func runDo(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	steps, err := readSteps(stepsInput)
	if err != nil {
		return err
	}

	c, proxy, err := dialBridge()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result := server.NewExecutor(proxy).RunSteps(ctx, steps, stopOnError)
	if err := output.Print(result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("%s", result.Error)
	}
	return nil
}

// readSteps decodes a YAML list of {step: {params}} objects.
func readSteps(r io.Reader) ([]server.Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no steps provided on stdin; pipe a YAML list of actions")
	}
	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	return server.ParseSteps(raw)
}
