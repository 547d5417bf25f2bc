package transport

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/protocol"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// RateLimit is the allowed transactions per second (0 = unlimited).
	RateLimit float64
	Logger    zerolog.Logger
}

// Server exposes a protocol.Transactor over gRPC.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	log    zerolog.Logger
}

// NewServer returns a Server dispatching transactions to target. The
// session health status starts NOT_SERVING; see SetConnected.
func NewServer(target protocol.Transactor, opts ServerOptions) *Server {
	log := logging.For(opts.Logger, "transport")
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(log),
		RateLimitInterceptor(NewRateLimiter(opts.RateLimit)),
	))
	gs.RegisterService(&binderServiceDesc, &binderService{target: target})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{grpc: gs, health: hs, log: log}
}

// SetConnected updates the health status of ServiceName.
func (s *Server) SetConnected(connected bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if connected {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, st)
}

// Serve accepts connections on lis until Stop or GracefulStop.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info().Str("addr", lis.Addr().String()).Msg("serving transactions")
	return s.grpc.Serve(lis)
}

// GracefulStop stops accepting connections and waits for in-flight calls.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Stop closes all connections immediately.
func (s *Server) Stop() {
	s.grpc.Stop()
}

type binderService struct {
	target protocol.Transactor
}

func (b *binderService) Transact(ctx context.Context, in *Transaction) (*TransactionReply, error) {
	data, handled, err := b.target.Transact(ctx, protocol.Code(in.Code), in.Data)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if in.Flags&FlagOneway != 0 {
		return &TransactionReply{Handled: handled}, nil
	}
	return &TransactionReply{Handled: handled, Data: data}, nil
}

// Listen opens a listener for addr, which is either "unix:<path>" (or
// "unix://<path>") or a TCP host:port. A stale unix socket file is removed
// first.
func Listen(addr string) (net.Listener, error) {
	if path, ok := unixPath(addr); ok {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
		return net.Listen("unix", path)
	}
	return net.Listen("tcp", addr)
}

// unixPath extracts the socket path from a unix address.
func unixPath(addr string) (string, bool) {
	if !strings.HasPrefix(addr, "unix:") {
		return "", false
	}
	path := strings.TrimPrefix(addr, "unix:")
	path = strings.TrimPrefix(path, "//")
	return path, true
}
