package protocol

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStub(p Provider) *Stub { return NewStub(p, zerolog.Nop()) }

func TestStub_InterfaceTransaction(t *testing.T) {
	s := newStub(&fakeProvider{})
	reply, handled, err := s.Transact(context.Background(), InterfaceTransaction, nil)
	require.NoError(t, err)
	require.True(t, handled)
	desc, err := ParcelFrom(reply).ReadString()
	require.NoError(t, err)
	assert.Equal(t, Descriptor, desc)
}

func TestStub_Ping(t *testing.T) {
	reply, handled, err := newStub(&fakeProvider{}).Transact(context.Background(), PingTransaction, nil)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Empty(t, reply)
}

func TestStub_RejectsWrongToken(t *testing.T) {
	impl := &fakeProvider{}
	p := NewParcel()
	p.WriteInterfaceToken("com.example.Impostor")
	p.WriteInt32(1)
	p.WriteInt32(2)

	reply, handled, err := newStub(impl).Transact(context.Background(), OpPerformClick, p.Bytes())
	require.NoError(t, err)
	require.True(t, handled)
	var re *RemoteError
	require.ErrorAs(t, ParcelFrom(reply).ReadException(), &re)
	assert.Equal(t, ExSecurity, re.Code)
	assert.Empty(t, impl.Calls())
}

func TestStub_UnknownCodes(t *testing.T) {
	s := newStub(&fakeProvider{})

	p := NewParcel()
	p.WriteInterfaceToken(Descriptor)
	reply, handled, err := s.Transact(context.Background(), 11, p.Bytes())
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, reply)

	_, handled, err = s.Transact(context.Background(), 0x7f000000, nil)
	require.NoError(t, err)
	assert.False(t, handled)

	// Codes in the user range are token-checked even when unknown.
	reply, handled, _ = s.Transact(context.Background(), 11, nil)
	assert.True(t, handled)
	var re *RemoteError
	require.ErrorAs(t, ParcelFrom(reply).ReadException(), &re)
	assert.Equal(t, ExSecurity, re.Code)
}

func TestStub_BadArguments(t *testing.T) {
	impl := &fakeProvider{}
	s := newStub(impl)

	p := NewParcel()
	p.WriteInterfaceToken(Descriptor)
	p.WriteInt32(5)
	reply, handled, _ := s.Transact(context.Background(), OpPerformClick, p.Bytes())
	require.True(t, handled)
	var re *RemoteError
	require.ErrorAs(t, ParcelFrom(reply).ReadException(), &re)
	assert.Equal(t, ExIllegalArgument, re.Code)

	p = NewParcel()
	p.WriteInterfaceToken(Descriptor)
	p.WriteNullableString(nil)
	p.WriteString("hi")
	reply, _, _ = s.Transact(context.Background(), OpSetTextOnNode, p.Bytes())
	require.ErrorAs(t, ParcelFrom(reply).ReadException(), &re)
	assert.Equal(t, ExNullPointer, re.Code)

	assert.Empty(t, impl.Calls())
}

func TestStub_NoExceptionMarkerPrecedesResult(t *testing.T) {
	impl := &fakeProvider{fakeOps: fakeOps{result: true}}
	s := newStub(impl)

	reply, handled, err := s.Transact(context.Background(), OpPerformClick, EncodeCall(PerformClick{X: 3, Y: 4}))
	require.NoError(t, err)
	require.True(t, handled)
	in := ParcelFrom(reply)
	marker, _ := in.ReadInt32()
	assert.Equal(t, ExNone, marker)
	v, _ := in.ReadBool()
	assert.True(t, v)
	assert.Zero(t, in.Remaining())
	assert.Equal(t, []string{"click 3 4"}, impl.Calls())
}

func TestStub_NullFocus(t *testing.T) {
	s := newStub(&fakeProvider{})
	reply, _, _ := s.Transact(context.Background(), OpFindFocusedNodeID, EncodeCall(FindFocusedNodeID{}))
	in := ParcelFrom(reply)
	require.NoError(t, in.ReadException())
	v, err := in.ReadNullableString()
	require.NoError(t, err)
	assert.Nil(t, v)
}
