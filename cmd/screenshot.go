package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the screen to a file",
	Long: `Ask the bridge to capture the screen and write it to --output. The file is
written by the bridge process, so the path refers to the bridge host.

Captures are spaced at least 1.1s apart; a request arriving sooner waits.`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().StringP("output", "o", "", "Output file path")
	screenshotCmd.Flags().String("image-format", "png", "Image format: png, jpeg")
	screenshotCmd.MarkFlagRequired("output")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("image-format")

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	return runStep(cmd, "screenshot", map[string]interface{}{"path": abs, "format": format})
}
