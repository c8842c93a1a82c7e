package host

import (
	"bytes"
	"context"
	"log/slog"
	"math"

	"github.com/aquabsd/aqua-go/devices"
	"github.com/aquabsd/aqua-go/proto"
	"github.com/tetratelabs/wazero/api"
)

// ModuleName is the import module of the host trampolines.
const ModuleName = "aqua_kos"

// Opaque function handles passed to aqua_set_kos_functions. The guest hands
// them back as the first argument of call_query and call_send.
const (
	QueryFunction uint64 = 0x6b710001
	SendFunction  uint64 = 0x6b730002
)

// MaxDeviceName bounds how far call_query scans for a name terminator.
const MaxDeviceName = 256

// memory is the subset of api.Memory the trampolines need.
type memory interface {
	Size() uint32
	Read(offset, byteCount uint32) ([]byte, bool)
	ReadUint64Le(offset uint32) (uint64, bool)
}

// guestMemory adapts guest linear memory to devices.Memory.
type guestMemory struct {
	mem memory
}

var _ devices.Memory = guestMemory{}

// ReadCString implements devices.Memory.
func (g guestMemory) ReadCString(addr uint64, max uint32) (string, bool) {
	size := g.mem.Size()
	if addr == 0 || addr >= uint64(size) {
		return "", false
	}
	n := size - uint32(addr)
	if n > max {
		n = max
	}
	buf, ok := g.mem.Read(uint32(addr), n)
	if !ok {
		return "", false
	}
	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		return "", false
	}
	return string(buf[:i]), true
}

func (g guestMemory) readWords(addr uint64, n int) ([]uint64, bool) {
	if n == 0 {
		return []uint64{}, true
	}
	if addr == 0 || addr+uint64(n)*8 > math.MaxUint32 {
		return nil, false
	}
	words := make([]uint64, n)
	for i := range words {
		w, ok := g.mem.ReadUint64Le(uint32(addr) + uint32(i*8))
		if !ok {
			return nil, false
		}
		words[i] = w
	}
	return words, true
}

// kosModule serves the aqua_kos imports.
type kosModule struct {
	devices *devices.Registry
	logger  *slog.Logger
}

func (k *kosModule) reject(ctx context.Context, fn string, msg string, attrs ...slog.Attr) uint64 {
	attrs = append(attrs, slog.String("fn", fn))
	k.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	return 0
}

func (k *kosModule) callQuery(ctx context.Context, mem memory, fn, reserved, name uint64) uint64 {
	if fn != QueryFunction {
		return k.reject(ctx, "call_query", "unknown function handle", slog.Uint64("handle", fn))
	}
	if reserved != proto.Reserved {
		return k.reject(ctx, "call_query", "non-zero reserved parameter", slog.Uint64("reserved", reserved))
	}

	s, ok := guestMemory{mem}.ReadCString(name, MaxDeviceName)
	if !ok {
		return k.reject(ctx, "call_query", "unreadable device name", slog.Uint64("addr", name))
	}

	dev, ok := k.devices.Lookup(s)
	if !ok {
		return k.reject(ctx, "call_query", "unknown device", slog.String("name", s))
	}
	k.logger.LogAttrs(ctx, slog.LevelDebug, "device query",
		slog.String("name", s), slog.Uint64("device", uint64(dev)))
	return uint64(dev)
}

func (k *kosModule) callSend(ctx context.Context, mem memory, fn, reserved, device, cmd, payload uint64) uint64 {
	if fn != SendFunction {
		return k.reject(ctx, "call_send", "unknown function handle", slog.Uint64("handle", fn))
	}
	if reserved != proto.Reserved {
		return k.reject(ctx, "call_send", "non-zero reserved parameter", slog.Uint64("reserved", reserved))
	}

	// only the low 16 bits of the command are significant
	dev, c := proto.Device(device), proto.Command(cmd)

	n, err := k.devices.Words(dev, c)
	if err != nil {
		return k.reject(ctx, "call_send", "undeliverable command", slog.Any("error", err))
	}

	gm := guestMemory{mem}
	words, ok := gm.readWords(payload, n)
	if !ok {
		return k.reject(ctx, "call_send", "unreadable payload",
			slog.Uint64("addr", payload), slog.Int("words", n))
	}

	res, err := k.devices.Invoke(ctx, dev, &devices.Request{Cmd: c, Payload: words, Memory: gm})
	if err != nil {
		return k.reject(ctx, "call_send", "command failed",
			slog.String("cmd", c.String()), slog.Any("error", err))
	}
	return res
}

func (e *Executor) registerKOS(ctx context.Context) error {
	k := &kosModule{devices: e.devices, logger: e.logger}

	_, err := e.runtime.NewHostModuleBuilder(ModuleName).
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, fn, reserved, name uint64) uint64 {
			mem := m.Memory()
			if mem == nil {
				return k.reject(ctx, "call_query", "guest has no memory")
			}
			return k.callQuery(ctx, mem, fn, reserved, name)
		}).
		Export("call_query").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, fn, reserved, device, cmd, payload uint64) uint64 {
			mem := m.Memory()
			if mem == nil {
				return k.reject(ctx, "call_send", "guest has no memory")
			}
			return k.callSend(ctx, mem, fn, reserved, device, cmd, payload)
		}).
		Export("call_send").
		Instantiate(ctx)
	return err
}
