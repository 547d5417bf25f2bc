package protocol

import (
	"context"
	"errors"

	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/rs/zerolog"
)

// Transactor delivers one transaction and returns the reply parcel and
// whether the receiver recognised the code.
type Transactor interface {
	Transact(ctx context.Context, code Code, data []byte) (reply []byte, handled bool, err error)
}

// Stub is the service side of the protocol. It decodes each transaction
// into a Call, invokes the Provider and encodes the result.
type Stub struct {
	impl Provider
	log  zerolog.Logger
}

var _ Transactor = (*Stub)(nil)

// NewStub returns a Stub serving impl.
func NewStub(impl Provider, log zerolog.Logger) *Stub {
	return &Stub{impl: impl, log: logging.For(log, "stub")}
}

// Transact handles one transaction. Unknown codes report handled=false;
// decoding problems are returned to the caller as exception replies. The
// error result is always nil.
func (s *Stub) Transact(ctx context.Context, code Code, data []byte) ([]byte, bool, error) {
	in := ParcelFrom(data)
	out := NewParcel()

	if code.IsUserCode() {
		if err := in.EnforceInterface(Descriptor); err != nil {
			s.log.Warn().Err(err).Stringer("op", code).Msg("rejected transaction")
			out.WriteException(ExSecurity, err.Error())
			return out.Bytes(), true, nil
		}
	}

	switch code {
	case InterfaceTransaction:
		out.WriteString(Descriptor)
		return out.Bytes(), true, nil
	case PingTransaction:
		return out.Bytes(), true, nil
	}

	call, err := DecodeCall(code, in)
	if errors.Is(err, ErrUnknownCode) {
		s.log.Debug().Stringer("op", code).Msg("unhandled transaction")
		return nil, false, nil
	}
	if err != nil {
		s.log.Warn().Err(err).Stringer("op", code).Msg("bad transaction arguments")
		out.WriteException(exceptionCode(err), err.Error())
		return out.Bytes(), true, nil
	}

	s.dispatch(ctx, call, out)
	return out.Bytes(), true, nil
}

func (s *Stub) dispatch(ctx context.Context, call Call, out *Parcel) {
	switch c := call.(type) {
	case GetUIHierarchy:
		v := s.impl.GetUIHierarchy(ctx)
		out.WriteNoException()
		out.WriteString(v)
	case PerformClick:
		v := s.impl.PerformClick(ctx, c.X, c.Y)
		out.WriteNoException()
		out.WriteBool(v)
	case PerformLongPress:
		v := s.impl.PerformLongPress(ctx, c.X, c.Y)
		out.WriteNoException()
		out.WriteBool(v)
	case PerformGlobalAction:
		v := s.impl.PerformGlobalAction(ctx, c.Action)
		out.WriteNoException()
		out.WriteBool(v)
	case PerformSwipe:
		v := s.impl.PerformSwipe(ctx, c.X1, c.Y1, c.X2, c.Y2, c.DurationMs)
		out.WriteNoException()
		out.WriteBool(v)
	case FindFocusedNodeID:
		v := s.impl.FindFocusedNodeID(ctx)
		out.WriteNoException()
		out.WriteNullableString(v)
	case SetTextOnNode:
		v := s.impl.SetTextOnNode(ctx, c.NodeID, c.Text)
		out.WriteNoException()
		out.WriteBool(v)
	case TakeScreenshot:
		v := s.impl.TakeScreenshot(ctx, c.Path, c.Format)
		out.WriteNoException()
		out.WriteBool(v)
	case IsConnected:
		v := s.impl.IsConnected(ctx)
		out.WriteNoException()
		out.WriteBool(v)
	case GetCurrentActivityName:
		v := s.impl.GetCurrentActivityName(ctx)
		out.WriteNoException()
		out.WriteString(v)
	}
}
