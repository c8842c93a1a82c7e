package devices

import (
	"context"
	"errors"
	"testing"

	"github.com/aquabsd/aqua-go/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Empty(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Empty(t, reg.Names())

	_, ok := reg.Lookup(proto.ClassWindow)
	assert.False(t, ok)
}

func TestNewRegistry_DuplicateDevice(t *testing.T) {
	_, err := NewRegistry(
		WithDevice("echo", &echoDevice{}),
		WithDevice("echo", &echoDevice{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate device name")
}

func TestNewRegistry_EmptyName(t *testing.T) {
	_, err := NewRegistry(WithDevice("", &echoDevice{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestNewRegistry_NilDevice(t *testing.T) {
	_, err := NewRegistry(WithDevice("nil", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is nil")
}

func TestRegistry_HandlesSorted(t *testing.T) {
	reg, err := NewRegistry(
		WithDevice("zebra", &echoDevice{}),
		WithDevice("alpha", &echoDevice{}),
		WithDevice("middle", &echoDevice{}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "middle", "zebra"}, reg.Names())

	for i, name := range reg.Names() {
		h, ok := reg.Lookup(name)
		require.True(t, ok)
		assert.Equal(t, proto.Device(i+1), h)

		back, ok := reg.Name(h)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}

	_, ok := reg.Name(0)
	assert.False(t, ok, "handle 0 is never assigned")
}

func TestRegistry_Words(t *testing.T) {
	reg, err := NewRegistry(WithDevice("echo", &echoDevice{cmd: 0x0101, words: 3}))
	require.NoError(t, err)
	h, _ := reg.Lookup("echo")

	n, err := reg.Words(h, 0x0101)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = reg.Words(h, 0x0202)
	var cmdErr *UnknownCommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "echo", cmdErr.Name)

	_, err = reg.Words(99, 0x0101)
	var devErr *UnknownDeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, proto.Device(99), devErr.Device)
}

func TestRegistry_Invoke(t *testing.T) {
	echo := &echoDevice{cmd: 0x0101, words: 2}
	reg, err := NewRegistry(WithDevice("echo", echo))
	require.NoError(t, err)
	h, _ := reg.Lookup("echo")

	t.Run("dispatches", func(t *testing.T) {
		res, err := reg.Invoke(context.Background(), h, &Request{Cmd: 0x0101, Payload: []uint64{9, 8}})
		require.NoError(t, err)
		assert.Equal(t, uint64(9), res)
	})

	t.Run("wrong payload length", func(t *testing.T) {
		_, err := reg.Invoke(context.Background(), h, &Request{Cmd: 0x0101, Payload: []uint64{9}})
		var pErr *PayloadError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, 2, pErr.Want)
		assert.Equal(t, 1, pErr.Got)
	})

	t.Run("unknown device", func(t *testing.T) {
		_, err := reg.Invoke(context.Background(), 77, &Request{Cmd: 0x0101, Payload: []uint64{1, 2}})
		var devErr *UnknownDeviceError
		assert.True(t, errors.As(err, &devErr))
	})

	assert.Equal(t, 1, echo.calls)
}

func TestRegistry_Invoke_SetsCall(t *testing.T) {
	var got Call
	spy := func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (uint64, error) {
			got, _ = CallFrom(ctx)
			return next(ctx, req)
		}
	}

	reg, err := NewRegistry(
		WithDevice("echo", &echoDevice{cmd: 0x0101, words: 1}),
		WithMiddleware(spy),
	)
	require.NoError(t, err)
	h, _ := reg.Lookup("echo")

	_, err = reg.Invoke(context.Background(), h, &Request{Cmd: 0x0101, Payload: []uint64{1}})
	require.NoError(t, err)
	assert.Equal(t, Call{Name: "echo", Device: h, Cmd: 0x0101}, got)
}

func TestWithMiddleware_FIFO(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, req *Request) (uint64, error) {
				order = append(order, name+"-before")
				res, err := next(ctx, req)
				order = append(order, name+"-after")
				return res, err
			}
		}
	}

	reg, err := NewRegistry(
		WithDevice("echo", &echoDevice{cmd: 0x0101, words: 1}),
		WithMiddleware(mw("mw1"), mw("mw2")),
		WithMiddleware(mw("mw3")),
	)
	require.NoError(t, err)
	h, _ := reg.Lookup("echo")

	_, err = reg.Invoke(context.Background(), h, &Request{Cmd: 0x0101, Payload: []uint64{1}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mw1-before", "mw2-before", "mw3-before",
		"mw3-after", "mw2-after", "mw1-after",
	}, order)
}
