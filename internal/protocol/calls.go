package protocol

import "fmt"

// Call is a decoded request for one operation. Each operation has its own
// struct carrying its positional arguments.
type Call interface {
	Code() Code
	encode(p *Parcel)
}

type GetUIHierarchy struct{}

type PerformClick struct{ X, Y int32 }

type PerformLongPress struct{ X, Y int32 }

type PerformGlobalAction struct{ Action int32 }

type PerformSwipe struct {
	X1, Y1, X2, Y2 int32
	DurationMs     int64
}

type FindFocusedNodeID struct{}

type SetTextOnNode struct{ NodeID, Text string }

type TakeScreenshot struct{ Path, Format string }

type IsConnected struct{}

type GetCurrentActivityName struct{}

func (GetUIHierarchy) Code() Code         { return OpGetUIHierarchy }
func (PerformClick) Code() Code           { return OpPerformClick }
func (PerformLongPress) Code() Code       { return OpPerformLongPress }
func (PerformGlobalAction) Code() Code    { return OpPerformGlobalAction }
func (PerformSwipe) Code() Code           { return OpPerformSwipe }
func (FindFocusedNodeID) Code() Code      { return OpFindFocusedNodeID }
func (SetTextOnNode) Code() Code          { return OpSetTextOnNode }
func (TakeScreenshot) Code() Code         { return OpTakeScreenshot }
func (IsConnected) Code() Code            { return OpIsConnected }
func (GetCurrentActivityName) Code() Code { return OpGetCurrentActivityName }

func (GetUIHierarchy) encode(*Parcel)         {}
func (FindFocusedNodeID) encode(*Parcel)      {}
func (IsConnected) encode(*Parcel)            {}
func (GetCurrentActivityName) encode(*Parcel) {}

func (c PerformClick) encode(p *Parcel) {
	p.WriteInt32(c.X)
	p.WriteInt32(c.Y)
}

func (c PerformLongPress) encode(p *Parcel) {
	p.WriteInt32(c.X)
	p.WriteInt32(c.Y)
}

func (c PerformGlobalAction) encode(p *Parcel) {
	p.WriteInt32(c.Action)
}

func (c PerformSwipe) encode(p *Parcel) {
	p.WriteInt32(c.X1)
	p.WriteInt32(c.Y1)
	p.WriteInt32(c.X2)
	p.WriteInt32(c.Y2)
	p.WriteInt64(c.DurationMs)
}

func (c SetTextOnNode) encode(p *Parcel) {
	p.WriteString(c.NodeID)
	p.WriteString(c.Text)
}

func (c TakeScreenshot) encode(p *Parcel) {
	p.WriteString(c.Path)
	p.WriteString(c.Format)
}

// EncodeCall writes the interface token and c's arguments.
func EncodeCall(c Call) []byte {
	p := NewParcel()
	p.WriteInterfaceToken(Descriptor)
	c.encode(p)
	return p.Bytes()
}

// DecodeCall reads the arguments for code from p, which must be positioned
// after the interface token.
func DecodeCall(code Code, p *Parcel) (Call, error) {
	d := decoder{p: p}
	var c Call
	switch code {
	case OpGetUIHierarchy:
		c = GetUIHierarchy{}
	case OpPerformClick:
		c = PerformClick{X: d.readInt32(), Y: d.readInt32()}
	case OpPerformLongPress:
		c = PerformLongPress{X: d.readInt32(), Y: d.readInt32()}
	case OpPerformGlobalAction:
		c = PerformGlobalAction{Action: d.readInt32()}
	case OpPerformSwipe:
		c = PerformSwipe{X1: d.readInt32(), Y1: d.readInt32(), X2: d.readInt32(), Y2: d.readInt32(), DurationMs: d.readInt64()}
	case OpFindFocusedNodeID:
		c = FindFocusedNodeID{}
	case OpSetTextOnNode:
		c = SetTextOnNode{NodeID: d.readString("nodeId"), Text: d.readString("text")}
	case OpTakeScreenshot:
		c = TakeScreenshot{Path: d.readString("path"), Format: d.readString("format")}
	case OpIsConnected:
		c = IsConnected{}
	case OpGetCurrentActivityName:
		c = GetCurrentActivityName{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}
	if d.err != nil {
		return nil, fmt.Errorf("%s: %w", code, d.err)
	}
	return c, nil
}

// decoder reads arguments in order and keeps the first error. Struct
// literal fields are evaluated left to right, matching the wire order.
type decoder struct {
	p   *Parcel
	err error
}

func (d *decoder) readInt32() int32 {
	if d.err != nil {
		return 0
	}
	v, err := d.p.ReadInt32()
	d.err = err
	return v
}

func (d *decoder) readInt64() int64 {
	if d.err != nil {
		return 0
	}
	v, err := d.p.ReadInt64()
	d.err = err
	return v
}

func (d *decoder) readString(name string) string {
	if d.err != nil {
		return ""
	}
	v, err := d.p.ReadString()
	if err != nil {
		d.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}
