package cmd

import (
	"context"

	"github.com/mj1618/a11y-bridge/internal/output"
	"github.com/mj1618/a11y-bridge/internal/server"
	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a UI condition",
	Long: `Poll the bridge until a node with the given text appears (or with --gone,
disappears), or until the foreground activity matches.

Examples:
  a11y-bridge wait --for-text "Welcome" --timeout 10
  a11y-bridge wait --for-text "Loading" --gone
  a11y-bridge wait --for-activity SettingsActivity`,
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("for-text", "", "Wait for a node containing this text")
	waitCmd.Flags().String("for-activity", "", "Wait for the foreground activity to contain this")
	waitCmd.Flags().Bool("gone", false, "Wait until the condition is NO LONGER true")
	waitCmd.Flags().Int("timeout", 30, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	forText, _ := cmd.Flags().GetString("for-text")
	forActivity, _ := cmd.Flags().GetString("for-activity")
	gone, _ := cmd.Flags().GetBool("gone")
	timeout, _ := cmd.Flags().GetInt("timeout")
	interval, _ := cmd.Flags().GetInt("interval")

	c, proxy, err := dialBridge()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The step applies its own deadline, so the per-call timeout is not used.
	result, err := server.NewExecutor(proxy).Execute(ctx, "wait", map[string]interface{}{
		"for-text":     forText,
		"for-activity": forActivity,
		"gone":         gone,
		"timeout":      timeout,
		"interval":     interval,
	})
	if err != nil {
		result.Error = err.Error()
		output.Print(result)
		return err
	}
	result.OK = true
	return output.Print(result)
}
