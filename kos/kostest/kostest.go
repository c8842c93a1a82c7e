// Package kostest provides an in-process stub host for testing guest code
// built on kos without a wasm runtime.
//
// The stub decodes every call while it is in progress: device names are read
// from their null-terminated buffers, payloads are read word by word using the
// agreed per-command word counts, and string arguments are dereferenced before
// the guest releases them.
package kostest

import (
	"sync"
	"testing"

	"github.com/aquabsd/aqua-go/kos"
	"github.com/aquabsd/aqua-go/proto"
)

// maxName bounds how far the stub scans for a terminator.
const maxName = 4096

// Query is a recorded device query.
type Query struct {
	Reserved uint64
	Name     string
}

// Sent is a recorded command.
type Sent struct {
	Reserved uint64
	Device   proto.Device
	Cmd      proto.Command
	Payload  []uint64
	// Text is the string the string argument pointed at, if the command has one.
	Text string
}

type key struct {
	dev proto.Device
	cmd proto.Command
}

// Host is a stub host. It is safe for concurrent use.
type Host struct {
	mu      sync.Mutex
	devices map[string]proto.Device
	classes map[proto.Device]string
	results map[key]uint64
	words   map[proto.Command]int
	strArgs map[proto.Command]int
	queries []Query
	sends   []Sent
	onSend  func(Sent)
}

// Option configures a Host.
type Option func(*Host)

// WithDevice makes the host resolve name to dev. Commands sent to dev use the
// word counts of name's device class.
func WithDevice(name string, dev proto.Device) Option {
	return func(h *Host) {
		h.devices[name] = dev
		h.classes[dev] = name
	}
}

// WithResult makes the host return res for cmd sent to dev.
func WithResult(dev proto.Device, cmd proto.Command, res uint64) Option {
	return func(h *Host) {
		h.results[key{dev, cmd}] = res
	}
}

// WithWords overrides the payload word count of cmd on every device.
func WithWords(cmd proto.Command, n int) Option {
	return func(h *Host) {
		h.words[cmd] = n
	}
}

// WithStringArg marks payload word index of cmd as a string address.
func WithStringArg(cmd proto.Command, index int) Option {
	return func(h *Host) {
		h.strArgs[cmd] = index
	}
}

// OnSend registers a hook that runs inside every send, after decoding.
func OnSend(fn func(Sent)) Option {
	return func(h *Host) {
		h.onSend = fn
	}
}

// New creates a stub host. The window caption command has its string
// argument registered by default.
func New(opts ...Option) *Host {
	h := &Host{
		devices: make(map[string]proto.Device),
		classes: make(map[proto.Device]string),
		results: make(map[key]uint64),
		words:   make(map[proto.Command]int),
		strArgs: map[proto.Command]int{proto.WinCaption: 1},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bridge returns a new bridge initialised with this host's functions.
func (h *Host) Bridge(opts ...kos.Option) *kos.Bridge {
	b := kos.New(opts...)
	b.Initialize(h.Query, h.Send)
	return b
}

// Query implements kos.QueryFunc. Unknown names resolve to 0.
func (h *Host) Query(reserved, name uint64) uint64 {
	s, _ := ReadCString(name, maxName)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.queries = append(h.queries, Query{Reserved: reserved, Name: s})
	return uint64(h.devices[s])
}

// Send implements kos.SendFunc. Unconfigured results are 0.
func (h *Host) Send(reserved, device, cmd, payload uint64) uint64 {
	h.mu.Lock()
	dev, c := proto.Device(device), proto.Command(cmd)
	n, ok := h.words[c]
	if !ok {
		n, _ = proto.Words(h.classes[dev], c)
	}
	strIdx, hasStr := h.strArgs[c]
	h.mu.Unlock()

	s := Sent{
		Reserved: reserved,
		Device:   dev,
		Cmd:      c,
		Payload:  ReadWords(payload, n),
	}
	if hasStr && strIdx < len(s.Payload) {
		s.Text, _ = ReadCString(s.Payload[strIdx], maxName)
	}

	h.mu.Lock()
	h.sends = append(h.sends, s)
	hook := h.onSend
	res := h.results[key{dev, c}]
	h.mu.Unlock()

	if hook != nil {
		hook(s)
	}
	return res
}

// Queries returns the recorded queries in call order.
func (h *Host) Queries() []Query {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Query(nil), h.queries...)
}

// Sends returns the recorded commands in call order.
func (h *Host) Sends() []Sent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Sent(nil), h.sends...)
}

// Count returns how many times cmd was sent.
func (h *Host) Count(cmd proto.Command) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, s := range h.sends {
		if s.Cmd == cmd {
			n++
		}
	}
	return n
}

// AssertReserved fails t if any recorded call had a non-zero reserved word.
func (h *Host) AssertReserved(t testing.TB) {
	t.Helper()
	for _, q := range h.Queries() {
		if q.Reserved != proto.Reserved {
			t.Errorf("query %q: reserved = %d, want 0", q.Name, q.Reserved)
		}
	}
	for _, s := range h.Sends() {
		if s.Reserved != proto.Reserved {
			t.Errorf("send %s: reserved = %d, want 0", s.Cmd, s.Reserved)
		}
	}
}
