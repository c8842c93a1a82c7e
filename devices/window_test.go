package devices

import (
	"context"
	"errors"
	"testing"

	"github.com/aquabsd/aqua-go/internal/testutil"
	"github.com/aquabsd/aqua-go/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietWindows(opts ...WindowOption) *WindowDevice {
	opts = append([]WindowOption{WithWindowLogger(testutil.QuietLogger())}, opts...)
	return NewWindowDevice(opts...)
}

func TestWindowDevice_Lifecycle(t *testing.T) {
	d := quietWindows()
	ctx := context.Background()
	mem := fakeMemory{0x1000: "Test"}

	id, err := d.Handle(ctx, &Request{Cmd: proto.WinCreate, Payload: []uint64{800, 600}})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	_, err = d.Handle(ctx, &Request{Cmd: proto.WinCaption, Payload: []uint64{id, 0x1000}, Memory: mem})
	require.NoError(t, err)

	require.Equal(t, []Window{{ID: 1, Width: 800, Height: 600, Caption: "Test"}}, d.Windows())

	_, err = d.Handle(ctx, &Request{Cmd: proto.WinClose, Payload: []uint64{id}})
	require.NoError(t, err)
	assert.Empty(t, d.Windows())
	assert.Equal(t, 1, d.Closed())
}

func TestWindowDevice_IDsIncrease(t *testing.T) {
	d := quietWindows()
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		id, err := d.Handle(ctx, &Request{Cmd: proto.WinCreate, Payload: []uint64{10, 10}})
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	_, err := d.Handle(ctx, &Request{Cmd: proto.WinClose, Payload: []uint64{2}})
	require.NoError(t, err)

	id, err := d.Handle(ctx, &Request{Cmd: proto.WinCreate, Payload: []uint64{10, 10}})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), id, "ids are not reused")

	got := d.Windows()
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{1, 3, 4}, []uint64{got[0].ID, got[1].ID, got[2].ID})
}

func TestWindowDevice_CreateLimits(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint64
	}{
		{"zero width", 0, 600},
		{"zero height", 800, 0},
		{"too wide", 1025, 600},
		{"too tall", 800, 769},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := quietWindows(WithMaxResolution(1024, 768))
			id, err := d.Handle(context.Background(), &Request{
				Cmd:     proto.WinCreate,
				Payload: []uint64{tt.width, tt.height},
			})
			assert.Zero(t, id)

			var wErr *WindowError
			require.ErrorAs(t, err, &wErr)
			assert.Equal(t, "create", wErr.Op)
			assert.Empty(t, d.Windows())
		})
	}

	d := quietWindows(WithMaxResolution(1024, 768))
	_, err := d.Handle(context.Background(), &Request{Cmd: proto.WinCreate, Payload: []uint64{1024, 768}})
	assert.NoError(t, err, "limits are inclusive")
}

func TestWindowDevice_UnknownWindow(t *testing.T) {
	d := quietWindows()
	ctx := context.Background()

	_, err := d.Handle(ctx, &Request{Cmd: proto.WinClose, Payload: []uint64{9}})
	assert.True(t, errors.Is(err, ErrNoWindow))

	_, err = d.Handle(ctx, &Request{
		Cmd:     proto.WinCaption,
		Payload: []uint64{9, 0x10},
		Memory:  fakeMemory{0x10: "x"},
	})
	assert.True(t, errors.Is(err, ErrNoWindow))
	assert.Zero(t, d.Closed())
}

func TestWindowDevice_DoubleCloseRejected(t *testing.T) {
	d := quietWindows()
	ctx := context.Background()

	id, err := d.Handle(ctx, &Request{Cmd: proto.WinCreate, Payload: []uint64{1, 1}})
	require.NoError(t, err)

	_, err = d.Handle(ctx, &Request{Cmd: proto.WinClose, Payload: []uint64{id}})
	require.NoError(t, err)
	_, err = d.Handle(ctx, &Request{Cmd: proto.WinClose, Payload: []uint64{id}})
	assert.ErrorIs(t, err, ErrNoWindow)
	assert.Equal(t, 1, d.Closed())
}

func TestWindowDevice_CaptionUnreadable(t *testing.T) {
	d := quietWindows(WithMaxCaption(4))
	ctx := context.Background()

	id, err := d.Handle(ctx, &Request{Cmd: proto.WinCreate, Payload: []uint64{1, 1}})
	require.NoError(t, err)

	_, err = d.Handle(ctx, &Request{
		Cmd:     proto.WinCaption,
		Payload: []uint64{id, 0x20},
		Memory:  fakeMemory{0x20: "far too long"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable caption")

	_, err = d.Handle(ctx, &Request{Cmd: proto.WinCaption, Payload: []uint64{id, 0x20}})
	assert.Contains(t, err.Error(), "no guest memory")
}

func TestWindowDevice_Words(t *testing.T) {
	d := quietWindows()

	n, ok := d.Words(proto.WinCaption)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = d.Words(0x0001)
	assert.False(t, ok)
}

func TestWindowDevice_ThroughRegistry(t *testing.T) {
	d := quietWindows()
	reg, err := NewRegistry(
		WithDevice(proto.ClassWindow, d),
		WithMiddleware(PanicRecoveryMiddleware()),
	)
	require.NoError(t, err)

	h, ok := reg.Lookup(proto.ClassWindow)
	require.True(t, ok)

	id, err := reg.Invoke(context.Background(), h, &Request{Cmd: proto.WinCreate, Payload: []uint64{640, 480}})
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), h, &Request{Cmd: 0x0001})
	var cmdErr *UnknownCommandError
	assert.ErrorAs(t, err, &cmdErr)

	_, err = reg.Invoke(context.Background(), h, &Request{Cmd: proto.WinClose, Payload: []uint64{id}})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Closed())
}

func TestWindowError(t *testing.T) {
	err := &WindowError{Op: "close", Window: 3, Err: ErrNoWindow}
	assert.Equal(t, "window close (id 3): no such window", err.Error())
	assert.Equal(t, "window create: boom", (&WindowError{Op: "create", Err: errors.New("boom")}).Error())
}
