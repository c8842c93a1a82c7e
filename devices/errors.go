package devices

import (
	"fmt"

	"github.com/aquabsd/aqua-go/proto"
)

// UnknownDeviceError is returned for handles or names the registry does not know.
type UnknownDeviceError struct {
	Name   string
	Device proto.Device
}

func (e *UnknownDeviceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown device %q", e.Name)
	}
	return fmt.Sprintf("unknown device handle %d", uint64(e.Device))
}

// UnknownCommandError is returned for commands a device does not support.
type UnknownCommandError struct {
	Name string
	Cmd  proto.Command
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("device %q does not support command %s", e.Name, e.Cmd)
}

// PayloadError is returned when a payload does not have the agreed word count.
type PayloadError struct {
	Cmd  proto.Command
	Want int
	Got  int
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("command %s takes %d payload words, got %d", e.Cmd, e.Want, e.Got)
}

// PanicError wraps a panic recovered from a device handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	switch v := e.Value.(type) {
	case error:
		return "panic: " + v.Error()
	case string:
		return "panic: " + v
	default:
		return "panic recovered"
	}
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// WindowError reports a failed window command.
type WindowError struct {
	Err    error
	Op     string
	Window uint64
}

func (e *WindowError) Error() string {
	if e.Window != 0 {
		return fmt.Sprintf("window %s (id %d): %v", e.Op, e.Window, e.Err)
	}
	return fmt.Sprintf("window %s: %v", e.Op, e.Err)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}
