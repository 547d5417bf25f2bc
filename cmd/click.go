package cmd

import "github.com/spf13/cobra"

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Tap at screen coordinates",
	Long:  "Dispatch a 50ms tap at absolute screen coordinates.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep(cmd, "click", pointParams(cmd))
	},
}

var longPressCmd = &cobra.Command{
	Use:   "long-press",
	Short: "Press and hold at screen coordinates",
	Long:  "Dispatch a 600ms press at absolute screen coordinates.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep(cmd, "long-press", pointParams(cmd))
	},
}

func init() {
	for _, c := range []*cobra.Command{clickCmd, longPressCmd} {
		rootCmd.AddCommand(c)
		c.Flags().Int("x", 0, "X screen coordinate")
		c.Flags().Int("y", 0, "Y screen coordinate")
		c.MarkFlagRequired("x")
		c.MarkFlagRequired("y")
	}
}

func pointParams(cmd *cobra.Command) map[string]interface{} {
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	return map[string]interface{}{"x": x, "y": y}
}
