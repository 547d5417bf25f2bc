package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/a11y-bridge/internal/capture"
	"github.com/mj1618/a11y-bridge/internal/config"
	"github.com/mj1618/a11y-bridge/internal/control"
	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/platform"
	"github.com/mj1618/a11y-bridge/internal/protocol"
	"github.com/mj1618/a11y-bridge/internal/session"
	"github.com/mj1618/a11y-bridge/internal/transport"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	// Registers the simulated accessibility host.
	_ "github.com/mj1618/a11y-bridge/internal/platform/sim"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the accessibility bridge service",
	Long: `Run the bridge service: connect to the accessibility host and answer
remote-control transactions on the listen address until interrupted.

The service reports SERVING on the gRPC health service only while the
accessibility session is connected.

Examples:
  a11y-bridge serve
  a11y-bridge serve --listen 127.0.0.1:7300 --scene ./login.yaml
  a11y-bridge serve --rate-limit 50`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("scene", "", "Scene file for the simulated host (watched for changes)")
	serveCmd.Flags().Int("sdk", 0, "Override the host API level (screen capture needs 30+)")
	serveCmd.Flags().Float64("rate-limit", 0, "Max transactions per second (0 = unlimited)")

	settings.BindPFlag(config.KeyScene, serveCmd.Flags().Lookup("scene"))
	settings.BindPFlag(config.KeySDK, serveCmd.Flags().Lookup("sdk"))
	settings.BindPFlag(config.KeyRateLimit, serveCmd.Flags().Lookup("rate-limit"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := platform.NewProvider(platform.Options{
		Scene:      cfg.Scene,
		SDKVersion: cfg.SDK,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("start accessibility host: %w", err)
	}
	defer provider.Close()

	lis, err := transport.Listen(cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Listen, err)
	}

	svc := newBridgeService(provider, cfg.RateLimit)
	serveLog := logging.For(logger, "serve")
	serveLog.Info().
		Str("listen", cfg.Listen).
		Int("sdk", provider.SDKVersion).
		Bool("screenshots", svc.throttle.Supported()).
		Msg("bridge listening")
	return svc.run(ctx, lis)
}

// bridgeService is the service stack for one accessibility host: session
// state fed by host events, the gated stub and its gRPC server.
type bridgeService struct {
	provider *platform.Provider
	state    *session.State[protocol.Operations]
	throttle *capture.Throttle
	server   *transport.Server
}

func newBridgeService(provider *platform.Provider, rateLimit float64) *bridgeService {
	state := session.NewState[protocol.Operations](logger)
	stub := protocol.NewStub(protocol.NewGate(state, logger), logger)
	srv := transport.NewServer(stub, transport.ServerOptions{
		RateLimit: rateLimit,
		Logger:    logger,
	})
	state.Subscribe(srv.SetConnected)

	return &bridgeService{
		provider: provider,
		state:    state,
		// One throttle for the process: the capture floor spans sessions.
		throttle: capture.NewThrottle(provider.Screen, provider.SDKVersion, logger),
		server:   srv,
	}
}

// run serves lis until ctx ends, then stops gracefully.
func (b *bridgeService) run(ctx context.Context, lis net.Listener) error {
	go session.Pump(ctx, b.state, b.provider.Events.Events(), func() protocol.Operations {
		return control.New(b.provider, b.throttle, logger)
	})

	errCh := make(chan error, 1)
	go func() { errCh <- b.server.Serve(lis) }()

	select {
	case <-ctx.Done():
		serveLog := logging.For(logger, "serve")
		serveLog.Info().Msg("shutting down")
		b.server.GracefulStop()
		return nil
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}
