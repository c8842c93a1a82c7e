package kos

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/aquabsd/aqua-go/internal/abi"
	"github.com/aquabsd/aqua-go/proto"
)

// QueryFunc is the raw device query call: (reserved, name address) -> device.
type QueryFunc func(reserved, name uint64) uint64

// SendFunc is the raw command call:
// (reserved, device, command, payload address) -> result.
type SendFunc func(reserved, device, cmd, payload uint64) uint64

type hostFuncs struct {
	query QueryFunc
	send  SendFunc
}

// Bridge holds the two host functions for the lifetime of the guest.
// It starts uninitialised; Initialize publishes the functions exactly once,
// after which any number of goroutines may call QueryDevice and Send.
type Bridge struct {
	fns    atomic.Pointer[hostFuncs]
	logger *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used for call tracing.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns an uninitialised Bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize stores the host functions. It must be called exactly once,
// before any other method.
func (b *Bridge) Initialize(query QueryFunc, send SendFunc) {
	if query == nil || send == nil {
		Fatal("initialize", "host functions must not be nil")
	}
	if !b.fns.CompareAndSwap(nil, &hostFuncs{query: query, send: send}) {
		Fatal("initialize", "bridge already initialized")
	}
	b.logger.Debug("kos bridge initialized")
}

// Initialized reports whether Initialize has been called.
func (b *Bridge) Initialized() bool {
	return b.fns.Load() != nil
}

// QueryDevice resolves a device class name to the host's device handle.
// The result is returned verbatim; the host defines no failure value.
func (b *Bridge) QueryDevice(name string) proto.Device {
	fns := b.load("query_device")

	var scope abi.Scope
	defer scope.Release()

	addr, err := scope.CString(name)
	if err != nil {
		panic(&PreconditionError{Op: "query_device", Reason: "invalid device name", Err: err})
	}

	dev := proto.Device(fns.query(proto.Reserved, addr))
	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "kos query",
		slog.String("name", name),
		slog.Uint64("device", uint64(dev)),
	)
	return dev
}

// Send issues cmd to dev with the given payload words and returns the host's
// result verbatim. The payload is copied into a buffer that stays in place
// until the host returns.
func (b *Bridge) Send(dev proto.Device, cmd proto.Command, payload ...uint64) uint64 {
	fns := b.load("send_device")

	var scope abi.Scope
	defer scope.Release()

	res := fns.send(proto.Reserved, uint64(dev), uint64(cmd), scope.Words(payload))
	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "kos send",
		slog.Uint64("device", uint64(dev)),
		slog.String("cmd", cmd.String()),
		slog.Int("words", len(payload)),
		slog.Uint64("result", res),
	)
	return res
}

// SendString is Send for commands whose last payload word is the address of
// a null-terminated string. The string buffer lives until the host returns.
func (b *Bridge) SendString(dev proto.Device, cmd proto.Command, text string, lead ...uint64) uint64 {
	var scope abi.Scope
	defer scope.Release()

	addr, err := scope.CString(text)
	if err != nil {
		panic(&PreconditionError{Op: "send_device", Reason: "invalid string argument", Err: err})
	}

	payload := make([]uint64, 0, len(lead)+1)
	payload = append(payload, lead...)
	payload = append(payload, addr)
	return b.Send(dev, cmd, payload...)
}

func (b *Bridge) load(op string) *hostFuncs {
	fns := b.fns.Load()
	if fns == nil {
		Fatal(op, "bridge used before initialize")
	}
	return fns
}
