package transport

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
)

// CodecName is the gRPC content-subtype carrying transaction envelopes.
const CodecName = "binder"

func init() {
	encoding.RegisterCodec(codec{})
}

// Transaction is one request envelope.
type Transaction struct {
	Code  uint32
	Flags uint32
	Data  []byte
}

// TransactionReply is one reply envelope.
type TransactionReply struct {
	Handled bool
	Data    []byte
}

// FlagOneway marks a transaction whose reply is discarded.
const FlagOneway uint32 = 0x01

// codec encodes the envelopes with protobuf wire framing so they stay
// readable by generic protobuf tooling:
//
//	Transaction      { 1: code varint, 2: flags varint, 3: data bytes }
//	TransactionReply { 1: handled varint, 2: data bytes }
type codec struct{}

func (codec) Name() string { return CodecName }

func (codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *Transaction:
		var b []byte
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.Code))
		if m.Flags != 0 {
			b = protowire.AppendTag(b, 2, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(m.Flags))
		}
		if len(m.Data) > 0 {
			b = protowire.AppendTag(b, 3, protowire.BytesType)
			b = protowire.AppendBytes(b, m.Data)
		}
		return b, nil
	case *TransactionReply:
		var b []byte
		if m.Handled {
			b = protowire.AppendTag(b, 1, protowire.VarintType)
			b = protowire.AppendVarint(b, protowire.EncodeBool(true))
		}
		if len(m.Data) > 0 {
			b = protowire.AppendTag(b, 2, protowire.BytesType)
			b = protowire.AppendBytes(b, m.Data)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%s codec: cannot marshal %T", CodecName, v)
	}
}

func (codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *Transaction:
		*m = Transaction{}
		return decodeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			switch {
			case num == 1 && typ == protowire.VarintType:
				x, n := protowire.ConsumeVarint(b)
				m.Code = uint32(x)
				return n
			case num == 2 && typ == protowire.VarintType:
				x, n := protowire.ConsumeVarint(b)
				m.Flags = uint32(x)
				return n
			case num == 3 && typ == protowire.BytesType:
				x, n := protowire.ConsumeBytes(b)
				m.Data = append([]byte(nil), x...)
				return n
			}
			return protowire.ConsumeFieldValue(num, typ, b)
		})
	case *TransactionReply:
		*m = TransactionReply{}
		return decodeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
			switch {
			case num == 1 && typ == protowire.VarintType:
				x, n := protowire.ConsumeVarint(b)
				m.Handled = protowire.DecodeBool(x)
				return n
			case num == 2 && typ == protowire.BytesType:
				x, n := protowire.ConsumeBytes(b)
				m.Data = append([]byte(nil), x...)
				return n
			}
			return protowire.ConsumeFieldValue(num, typ, b)
		})
	default:
		return fmt.Errorf("%s codec: cannot unmarshal into %T", CodecName, v)
	}
}

// decodeFields walks the fields of a message, letting field consume each
// value. Unknown fields are skipped.
func decodeFields(b []byte, field func(protowire.Number, protowire.Type, []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n = field(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}
