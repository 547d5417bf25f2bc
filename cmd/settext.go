package cmd

import "github.com/spf13/cobra"

var setTextCmd = &cobra.Command{
	Use:   "set-text",
	Short: "Replace the text of an editable node",
	Long: `Replace the text of the node with the given fingerprint id. When the node
is not editable, its nearest editable descendant is used. Without --node-id
the focused node is targeted.

Examples:
  a11y-bridge set-text --text "hello"
  a11y-bridge set-text --node-id "[60,140][1020,240]" --text ""`,
	RunE: runSetText,
}

func init() {
	rootCmd.AddCommand(setTextCmd)
	setTextCmd.Flags().String("node-id", "", "Fingerprint id of the target node (default: focused node)")
	setTextCmd.Flags().String("text", "", "New text (may be empty)")
	setTextCmd.MarkFlagRequired("text")
}

func runSetText(cmd *cobra.Command, args []string) error {
	nodeID, _ := cmd.Flags().GetString("node-id")
	text, _ := cmd.Flags().GetString("text")
	return runStep(cmd, "set-text", map[string]interface{}{"node-id": nodeID, "text": text})
}
