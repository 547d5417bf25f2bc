package cmd

import "github.com/spf13/cobra"

var globalCmd = &cobra.Command{
	Use:   "global <action>",
	Short: "Perform a system-wide action",
	Long: `Perform a global action by name or numeric id.

Names: back, home, recents, notifications, quick-settings, power-dialog.
Any other integer is forwarded to the host as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep(cmd, "global", map[string]interface{}{"action": args[0]})
	},
}

func init() {
	rootCmd.AddCommand(globalCmd)
}
