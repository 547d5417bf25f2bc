package protocol

import (
	"context"
	"fmt"
)

// Proxy is the client side of the protocol. Each method sends one
// transaction through the Transactor and decodes the typed result.
type Proxy struct {
	remote Transactor
}

// NewProxy returns a Proxy sending through remote.
func NewProxy(remote Transactor) *Proxy {
	return &Proxy{remote: remote}
}

// InterfaceDescriptor asks the service for its interface token.
func (p *Proxy) InterfaceDescriptor(ctx context.Context) (string, error) {
	reply, handled, err := p.remote.Transact(ctx, InterfaceTransaction, nil)
	if err != nil {
		return "", err
	}
	if !handled {
		return "", fmt.Errorf("%w: %s", ErrUnhandled, InterfaceTransaction)
	}
	return ParcelFrom(reply).ReadString()
}

// Ping checks that the service is reachable.
func (p *Proxy) Ping(ctx context.Context) error {
	_, handled, err := p.remote.Transact(ctx, PingTransaction, nil)
	if err != nil {
		return err
	}
	if !handled {
		return fmt.Errorf("%w: %s", ErrUnhandled, PingTransaction)
	}
	return nil
}

func (p *Proxy) GetUIHierarchy(ctx context.Context) (string, error) {
	return readReply(ctx, p, GetUIHierarchy{}, (*Parcel).ReadString)
}

func (p *Proxy) PerformClick(ctx context.Context, x, y int32) (bool, error) {
	return readReply(ctx, p, PerformClick{X: x, Y: y}, (*Parcel).ReadBool)
}

func (p *Proxy) PerformLongPress(ctx context.Context, x, y int32) (bool, error) {
	return readReply(ctx, p, PerformLongPress{X: x, Y: y}, (*Parcel).ReadBool)
}

func (p *Proxy) PerformGlobalAction(ctx context.Context, action int32) (bool, error) {
	return readReply(ctx, p, PerformGlobalAction{Action: action}, (*Parcel).ReadBool)
}

func (p *Proxy) PerformSwipe(ctx context.Context, x1, y1, x2, y2 int32, durationMs int64) (bool, error) {
	return readReply(ctx, p, PerformSwipe{X1: x1, Y1: y1, X2: x2, Y2: y2, DurationMs: durationMs}, (*Parcel).ReadBool)
}

// FindFocusedNodeID returns nil when nothing has focus.
func (p *Proxy) FindFocusedNodeID(ctx context.Context) (*string, error) {
	return readReply(ctx, p, FindFocusedNodeID{}, (*Parcel).ReadNullableString)
}

func (p *Proxy) SetTextOnNode(ctx context.Context, nodeID, text string) (bool, error) {
	return readReply(ctx, p, SetTextOnNode{NodeID: nodeID, Text: text}, (*Parcel).ReadBool)
}

func (p *Proxy) TakeScreenshot(ctx context.Context, path, format string) (bool, error) {
	return readReply(ctx, p, TakeScreenshot{Path: path, Format: format}, (*Parcel).ReadBool)
}

func (p *Proxy) IsConnected(ctx context.Context) (bool, error) {
	return readReply(ctx, p, IsConnected{}, (*Parcel).ReadBool)
}

func (p *Proxy) GetCurrentActivityName(ctx context.Context) (string, error) {
	return readReply(ctx, p, GetCurrentActivityName{}, (*Parcel).ReadString)
}

// readReply sends c and decodes a successful reply's payload with read.
func readReply[T any](ctx context.Context, p *Proxy, c Call, read func(*Parcel) (T, error)) (T, error) {
	var zero T
	reply, handled, err := p.remote.Transact(ctx, c.Code(), EncodeCall(c))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", c.Code(), err)
	}
	if !handled {
		return zero, fmt.Errorf("%w: %s", ErrUnhandled, c.Code())
	}
	in := ParcelFrom(reply)
	if err := in.ReadException(); err != nil {
		return zero, fmt.Errorf("%s: %w", c.Code(), err)
	}
	v, err := read(in)
	if err != nil {
		return zero, fmt.Errorf("%s: decode reply: %w", c.Code(), err)
	}
	return v, nil
}
