package protocol

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxy_OverStub(t *testing.T) {
	fp := "[0,0][10,10]"
	impl := &fakeProvider{
		fakeOps:   fakeOps{result: true, xml: "<node/>", focused: &fp},
		connected: true,
		activity:  "com.example.Main",
	}
	proxy := NewProxy(newStub(impl))
	ctx := context.Background()

	desc, err := proxy.InterfaceDescriptor(ctx)
	require.NoError(t, err)
	assert.Equal(t, Descriptor, desc)
	require.NoError(t, proxy.Ping(ctx))

	xml, err := proxy.GetUIHierarchy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<node/>", xml)

	ok, err := proxy.PerformClick(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = proxy.PerformLongPress(ctx, 3, 4)
	assert.True(t, ok)
	ok, _ = proxy.PerformGlobalAction(ctx, 2)
	assert.True(t, ok)
	ok, _ = proxy.PerformSwipe(ctx, 1, 2, 3, 4, 300)
	assert.True(t, ok)
	ok, _ = proxy.SetTextOnNode(ctx, fp, "hi")
	assert.True(t, ok)
	ok, _ = proxy.TakeScreenshot(ctx, "/tmp/s.png", "png")
	assert.True(t, ok)

	focused, err := proxy.FindFocusedNodeID(ctx)
	require.NoError(t, err)
	require.NotNil(t, focused)
	assert.Equal(t, fp, *focused)

	connected, _ := proxy.IsConnected(ctx)
	assert.True(t, connected)
	activity, _ := proxy.GetCurrentActivityName(ctx)
	assert.Equal(t, "com.example.Main", activity)

	assert.Equal(t, []string{
		"getUiHierarchy",
		"click 1 2",
		"longPress 3 4",
		"global 2",
		"swipe 1 2 3 4 300",
		"setText [0,0][10,10] hi",
		"screenshot /tmp/s.png png",
		"focused",
	}, impl.Calls())
}

// funcTransactor adapts a function to Transactor.
type funcTransactor func(ctx context.Context, code Code, data []byte) ([]byte, bool, error)

func (f funcTransactor) Transact(ctx context.Context, code Code, data []byte) ([]byte, bool, error) {
	return f(ctx, code, data)
}

func TestProxy_Errors(t *testing.T) {
	ctx := context.Background()

	unhandled := NewProxy(funcTransactor(func(context.Context, Code, []byte) ([]byte, bool, error) {
		return nil, false, nil
	}))
	_, err := unhandled.IsConnected(ctx)
	assert.ErrorIs(t, err, ErrUnhandled)
	assert.ErrorIs(t, unhandled.Ping(ctx), ErrUnhandled)

	boom := errors.New("connection reset")
	broken := NewProxy(funcTransactor(func(context.Context, Code, []byte) ([]byte, bool, error) {
		return nil, false, boom
	}))
	_, err = broken.GetUIHierarchy(ctx)
	assert.ErrorIs(t, err, boom)

	remote := NewProxy(funcTransactor(func(context.Context, Code, []byte) ([]byte, bool, error) {
		p := NewParcel()
		p.WriteException(ExSecurity, "nope")
		return p.Bytes(), true, nil
	}))
	_, err = remote.PerformClick(ctx, 0, 0)
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ExSecurity, re.Code)
}
