package cmd

import "github.com/spf13/cobra"

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Swipe between two points",
	Long: `Dispatch a straight-line stroke from (x1,y1) to (x2,y2) over --duration
milliseconds.

Example:
  a11y-bridge swipe --x1 540 --y1 1800 --x2 540 --y2 600 --duration 250`,
	RunE: runSwipe,
}

func init() {
	rootCmd.AddCommand(swipeCmd)
	for _, name := range []string{"x1", "y1", "x2", "y2"} {
		swipeCmd.Flags().Int(name, 0, "Coordinate "+name)
		swipeCmd.MarkFlagRequired(name)
	}
	swipeCmd.Flags().Int("duration", 300, "Stroke duration in milliseconds")
}

func runSwipe(cmd *cobra.Command, args []string) error {
	params := map[string]interface{}{}
	for _, name := range []string{"x1", "y1", "x2", "y2", "duration"} {
		v, _ := cmd.Flags().GetInt(name)
		params[name] = v
	}
	return runStep(cmd, "swipe", params)
}
