package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mj1618/a11y-bridge/internal/config"
	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/output"
	"github.com/mj1618/a11y-bridge/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// settings layers defaults, config file, environment and flags.
	settings = config.New()
	// cfg and logger are resolved before every command runs.
	cfg    config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "a11y-bridge",
	Short: "Remote-control a device's UI through its accessibility service",
	Long: `A bridge exposing a host accessibility service over IPC: read the UI
hierarchy, inject taps, long-presses and swipes, set text on editable nodes,
perform global actions and capture the screen.

Run "a11y-bridge serve" to start the service, then drive it with the other
commands or expose it to agents with "a11y-bridge mcp".`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default: ~/.config/a11y-bridge.yaml or ./a11y-bridge.yaml)")
	pf.String("format", "yaml", "Output format: yaml, json")
	pf.Bool("pretty", false, "Indent JSON output")
	pf.String("listen", config.DefaultListen, "Bridge address: unix://<path> or host:port")
	pf.String("log-level", "info", "Log level: debug, info, warn, error, off")
	pf.String("log-format", "console", "Log format: console, json")
	pf.Duration("timeout", settings.GetDuration(config.KeyTimeout), "Per-call timeout")

	settings.BindPFlag(config.KeyListen, pf.Lookup("listen"))
	settings.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	settings.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))
	settings.BindPFlag(config.KeyTimeout, pf.Lookup("timeout"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		if err := config.ReadFile(settings, path); err != nil {
			return err
		}
		resolved, err := config.Resolve(settings)
		if err != nil {
			return err
		}
		cfg = resolved

		l, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		if err != nil {
			return err
		}
		logger = l

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags (e.g. screenshot --image-format).
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}

// callContext bounds one client call by the configured timeout.
func callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, cfg.Timeout)
}
