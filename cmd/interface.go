package cmd

import (
	"fmt"

	"github.com/mj1618/a11y-bridge/internal/output"
	"github.com/spf13/cobra"
)

var interfaceCmd = &cobra.Command{
	Use:   "interface",
	Short: "Ping the bridge and print its interface descriptor",
	RunE:  runInterface,
}

func init() {
	rootCmd.AddCommand(interfaceCmd)
}

func runInterface(cmd *cobra.Command, args []string) error {
	c, proxy, err := dialBridge()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := callContext(cmd)
	defer cancel()

	if err := proxy.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	desc, err := proxy.InterfaceDescriptor(ctx)
	if err != nil {
		return err
	}
	return output.Print(output.StatusResult{Address: cfg.Listen, Descriptor: desc})
}
