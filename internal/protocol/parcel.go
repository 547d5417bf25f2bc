package protocol

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Parcel is a positional container of typed values. Integers are zig-zag
// varints, booleans are int32 0 or 1, and strings are an int32 byte length
// (-1 for null) followed by UTF-8 bytes. Values must be read back in the
// order they were written.
type Parcel struct {
	buf []byte
	off int
}

// NewParcel returns an empty parcel for writing.
func NewParcel() *Parcel { return &Parcel{} }

// ParcelFrom returns a parcel reading data from the start.
func ParcelFrom(data []byte) *Parcel { return &Parcel{buf: data} }

// Bytes returns the written contents.
func (p *Parcel) Bytes() []byte { return p.buf }

// Remaining returns the number of unread bytes.
func (p *Parcel) Remaining() int { return len(p.buf) - p.off }

func (p *Parcel) WriteInt32(v int32) {
	p.WriteInt64(int64(v))
}

func (p *Parcel) WriteInt64(v int64) {
	p.buf = protowire.AppendVarint(p.buf, protowire.EncodeZigZag(v))
}

func (p *Parcel) WriteBool(v bool) {
	if v {
		p.WriteInt32(1)
		return
	}
	p.WriteInt32(0)
}

func (p *Parcel) WriteString(s string) {
	p.WriteInt32(int32(len(s)))
	p.buf = append(p.buf, s...)
}

// WriteNullableString writes s, or the null marker when s is nil.
func (p *Parcel) WriteNullableString(s *string) {
	if s == nil {
		p.WriteInt32(-1)
		return
	}
	p.WriteString(*s)
}

// WriteInterfaceToken writes the token checked by EnforceInterface.
func (p *Parcel) WriteInterfaceToken(descriptor string) {
	p.WriteString(descriptor)
}

// WriteNoException writes a success reply header.
func (p *Parcel) WriteNoException() {
	p.WriteInt32(ExNone)
}

// WriteException writes a failure reply header.
func (p *Parcel) WriteException(code int32, message string) {
	p.WriteInt32(code)
	p.WriteString(message)
}

func (p *Parcel) ReadInt64() (int64, error) {
	v, n := protowire.ConsumeVarint(p.buf[p.off:])
	if n < 0 {
		return 0, fmt.Errorf("%w: at offset %d: %v", ErrMalformed, p.off, protowire.ParseError(n))
	}
	p.off += n
	return protowire.DecodeZigZag(v), nil
}

func (p *Parcel) ReadInt32() (int32, error) {
	v, err := p.ReadInt64()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: int32 out of range: %d", ErrMalformed, v)
	}
	return int32(v), nil
}

func (p *Parcel) ReadBool() (bool, error) {
	v, err := p.ReadInt32()
	return v != 0, err
}

// ReadNullableString reads a string that may be null.
func (p *Parcel) ReadNullableString() (*string, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < 0 || int(n) > p.Remaining() {
		return nil, fmt.Errorf("%w: string length %d with %d bytes left", ErrMalformed, n, p.Remaining())
	}
	s := string(p.buf[p.off : p.off+int(n)])
	p.off += int(n)
	return &s, nil
}

// ReadString reads a string that must not be null.
func (p *Parcel) ReadString() (string, error) {
	s, err := p.ReadNullableString()
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", ErrNullArgument
	}
	return *s, nil
}

// EnforceInterface consumes the interface token and checks it against
// descriptor.
func (p *Parcel) EnforceInterface(descriptor string) error {
	token, err := p.ReadNullableString()
	if err != nil {
		return fmt.Errorf("%w: unreadable interface token", ErrInterfaceMismatch)
	}
	if token == nil || *token != descriptor {
		got := "<null>"
		if token != nil {
			got = *token
		}
		return fmt.Errorf("%w: expected %s, got %s", ErrInterfaceMismatch, descriptor, got)
	}
	return nil
}

// ReadException consumes a reply header and returns the remote exception,
// if any, as a *RemoteError.
func (p *Parcel) ReadException() error {
	code, err := p.ReadInt32()
	if err != nil {
		return err
	}
	if code == ExNone {
		return nil
	}
	msg, err := p.ReadNullableString()
	if err != nil {
		return err
	}
	re := &RemoteError{Code: code}
	if msg != nil {
		re.Message = *msg
	}
	return re
}
