package transport

import (
	"context"
	"fmt"

	"github.com/mj1618/a11y-bridge/internal/protocol"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Client sends transactions to a Server.
type Client struct {
	conn *grpc.ClientConn
}

var _ protocol.Transactor = (*Client)(nil)

// Dial creates a client for target ("unix:<path>" or host:port). The
// connection is established lazily on the first call.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Transact implements protocol.Transactor.
func (c *Client) Transact(ctx context.Context, code protocol.Code, data []byte) ([]byte, bool, error) {
	reply := new(TransactionReply)
	err := c.conn.Invoke(ctx, transactMethod, &Transaction{Code: uint32(code), Data: data}, reply, grpc.CallContentSubtype(CodecName))
	if err != nil {
		return nil, false, err
	}
	return reply.Data, reply.Handled, nil
}

// SessionHealth reports the server's session health status.
func (c *Client) SessionHealth(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
