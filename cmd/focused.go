package cmd

import "github.com/spf13/cobra"

var focusedCmd = &cobra.Command{
	Use:   "focused",
	Short: "Print the id of the focused node",
	Long: `Print the fingerprint id of the node holding input focus, or failing
that accessibility focus. The id can be passed to set-text --node-id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep(cmd, "focused", nil)
	},
}

func init() {
	rootCmd.AddCommand(focusedCmd)
}
