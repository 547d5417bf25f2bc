package transport

import (
	"context"
	"strings"
	"time"

	"github.com/mj1618/a11y-bridge/internal/protocol"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const healthPrefix = "/grpc.health.v1.Health/"

// NewRateLimiter returns a limiter allowing rps transactions per second
// with a burst of twice that. It returns nil when rps <= 0.
func NewRateLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps * 2)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// RateLimitInterceptor rejects calls with ResourceExhausted once limiter is
// out of tokens. Health checks are exempt. A nil limiter disables limiting.
func RateLimitInterceptor(limiter *rate.Limiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if limiter == nil || strings.HasPrefix(info.FullMethod, healthPrefix) {
			return handler(ctx, req)
		}
		if !limiter.Allow() {
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs each transaction at debug level and failures at
// warn level.
func LoggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		ev := log.Debug()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev = ev.Str("method", info.FullMethod).Dur("elapsed", time.Since(start))
		if tx, ok := req.(*Transaction); ok {
			ev = ev.Stringer("op", protocol.Code(tx.Code))
		}
		if reply, ok := resp.(*TransactionReply); ok {
			ev = ev.Bool("handled", reply.Handled)
		}
		ev.Msg("transaction")
		return resp, err
	}
}
