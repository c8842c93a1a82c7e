package host

import (
	"io"
	"log/slog"

	"github.com/aquabsd/aqua-go/devices"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithDevices sets the device registry served to guests.
func WithDevices(registry *devices.Registry) Option {
	return func(e *Executor) {
		e.devices = registry
	}
}

// WithLogger sets the logger for the executor and the kos module.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMemoryLimitPages caps guest memory in 64 KiB pages. Zero means the
// wazero default.
func WithMemoryLimitPages(pages uint32) Option {
	return func(e *Executor) {
		e.memoryLimitPages = pages
	}
}

// WithStdout sets the guest's stdout.
func WithStdout(w io.Writer) Option {
	return func(e *Executor) {
		if w != nil {
			e.stdout = w
		}
	}
}

// WithStderr sets the guest's stderr.
func WithStderr(w io.Writer) Option {
	return func(e *Executor) {
		if w != nil {
			e.stderr = w
		}
	}
}
