package guest

import (
	"sync/atomic"

	"github.com/aquabsd/aqua-go/kos"
)

// EntryFunc is the guest program body.
type EntryFunc func(*kos.Bridge)

// QueryImport and SendImport are the host trampolines: they call the host
// function identified by fn with the remaining arguments.
type (
	QueryImport func(fn, reserved, name uint64) uint64
	SendImport  func(fn, reserved, device, cmd, payload uint64) uint64
)

type process struct {
	bridge *kos.Bridge
	entry  atomic.Pointer[EntryFunc]
}

func newProcess(opts ...kos.Option) *process {
	return &process{bridge: kos.New(opts...)}
}

var std = newProcess()

// Bridge returns the process bridge that the host initialises.
func Bridge() *kos.Bridge { return std.bridge }

// SetEntry registers the program body run by the host's entry call.
// It must be called once, typically from an init function of package main.
func SetEntry(fn EntryFunc) { std.setEntry(fn) }

// Enter runs the registered program body. The host calls it through the
// __native_entry export.
func Enter() { std.enter() }

// Bind returns bridge functions that forward to the host function handles
// query and send through the given imports.
func Bind(query, send uint64, callQuery QueryImport, callSend SendImport) (kos.QueryFunc, kos.SendFunc) {
	q := func(reserved, name uint64) uint64 {
		return callQuery(query, reserved, name)
	}
	s := func(reserved, device, cmd, payload uint64) uint64 {
		return callSend(send, reserved, device, cmd, payload)
	}
	return q, s
}

func (p *process) setEntry(fn EntryFunc) {
	if fn == nil {
		kos.Fatal("set_entry", "entry function must not be nil")
	}
	if !p.entry.CompareAndSwap(nil, &fn) {
		kos.Fatal("set_entry", "entry function already registered")
	}
}

func (p *process) setKosFunctions(query, send uint64, callQuery QueryImport, callSend SendImport) {
	p.bridge.Initialize(Bind(query, send, callQuery, callSend))
}

func (p *process) enter() {
	fn := p.entry.Load()
	if fn == nil {
		kos.Fatal("native_entry", "no entry function registered")
	}
	if !p.bridge.Initialized() {
		kos.Fatal("native_entry", "host functions not set")
	}
	(*fn)(p.bridge)
}
