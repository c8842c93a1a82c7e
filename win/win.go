// Package win wraps the aquabsd.alps.win device.
//
// A Window owns exactly one host window from Open until Close. Close sends the
// closing command once; using a window after that is a precondition violation
// and panics. With scopes a window to a function so that it is closed on every
// exit path.
package win

import (
	"sync"

	"github.com/aquabsd/aqua-go/kos"
	"github.com/aquabsd/aqua-go/proto"
)

type state uint8

const (
	stateOpen state = iota + 1
	stateClosed
)

// Window is an open host window. It must not be copied; pass *Window.
type Window struct {
	mu     sync.Mutex // serialises commands on handle
	bridge *kos.Bridge
	dev    proto.Device
	handle uint64
	xRes   uint32
	yRes   uint32
	state  state
}

// Open queries the window device and creates a window of the given
// resolution. The resolution is passed to the host unchecked.
func Open(b *kos.Bridge, xRes, yRes uint32) *Window {
	if b == nil {
		kos.Fatal("win_open", "nil bridge")
	}

	dev := b.QueryDevice(proto.ClassWindow)
	handle := b.Send(dev, proto.WinCreate, uint64(xRes), uint64(yRes))

	return &Window{
		bridge: b,
		dev:    dev,
		handle: handle,
		xRes:   xRes,
		yRes:   yRes,
		state:  stateOpen,
	}
}

// With opens a window, calls fn with it, and closes it when fn returns or
// panics. fn may close the window itself; it is never closed twice.
func With(b *kos.Bridge, xRes, yRes uint32, fn func(*Window) error) error {
	w := Open(b, xRes, yRes)
	defer w.release()
	return fn(w)
}

// SetCaption sets the window title.
func (w *Window) SetCaption(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.mustBeOpen("set_caption")
	w.bridge.SendString(w.dev, proto.WinCaption, text, w.handle)
}

// Close closes the window. It must be called exactly once.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.mustBeOpen("close")
	w.closeLocked()
}

// IsOpen reports whether the window has not been closed yet.
func (w *Window) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == stateOpen
}

// Device returns the window device handle.
func (w *Window) Device() proto.Device { return w.dev }

// Handle returns the host's handle for this window.
func (w *Window) Handle() uint64 { return w.handle }

// Resolution returns the resolution requested at Open.
func (w *Window) Resolution() (xRes, yRes uint32) { return w.xRes, w.yRes }

// release closes the window if it is still open.
func (w *Window) release() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == stateOpen {
		w.closeLocked()
	}
}

func (w *Window) closeLocked() {
	// marked closed first so a panicking host cannot cause a second close
	w.state = stateClosed
	w.bridge.Send(w.dev, proto.WinClose, w.handle)
}

func (w *Window) mustBeOpen(op string) {
	if w.state != stateOpen {
		kos.Fatal(op, "window is closed")
	}
}
