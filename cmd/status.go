package cmd

import (
	"github.com/mj1618/a11y-bridge/internal/output"
	"github.com/mj1618/a11y-bridge/internal/server"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show bridge and session status",
	Long:  "Report the bridge's interface descriptor, whether the accessibility session is connected, its health status and the foreground activity.",
	RunE:  runStatus,
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Print the foreground activity class name",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, proxy, err := dialBridge()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := callContext(cmd)
		defer cancel()

		name, err := proxy.GetCurrentActivityName(ctx)
		if err != nil {
			return err
		}
		return output.Print(activityResult{Activity: name})
	},
}

type activityResult struct {
	Activity string `yaml:"activity" json:"activity"`
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(activityCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, proxy, err := dialBridge()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := callContext(cmd)
	defer cancel()

	st, err := server.Status(ctx, proxy)
	if err != nil {
		return err
	}
	health, err := c.SessionHealth(ctx)
	if err != nil {
		return err
	}
	st.Address = cfg.Listen
	st.Health = health.String()
	return output.Print(st)
}
