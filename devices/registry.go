package devices

import (
	"context"
	"fmt"
	"sort"

	"github.com/aquabsd/aqua-go/proto"
)

// Registry is an immutable set of named devices.
// Handles are assigned from 1 in sorted name order, so they are stable for a
// given set of names. Handle 0 is never assigned.
type Registry struct {
	handles map[string]proto.Device
	entries map[proto.Device]*entry
	names   []string
}

type entry struct {
	device  Device
	handler Handler
	name    string
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	devices    map[string]Device
	middleware []Middleware
	errors     []error
}

// RegistryOption configures a Registry under construction.
type RegistryOption func(*registryBuilder)

// NewRegistry creates an immutable Registry.
// Returns an error if a name is empty or registered twice.
//
//	reg, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithDevice(proto.ClassWindow, NewWindowDevice()),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{devices: make(map[string]Device)}
	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.devices))
	for name := range b.devices {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &Registry{
		handles: make(map[string]proto.Device, len(names)),
		entries: make(map[proto.Device]*entry, len(names)),
		names:   names,
	}
	for i, name := range names {
		dev := b.devices[name]

		var h Handler = dev.Handle
		for j := len(b.middleware) - 1; j >= 0; j-- {
			h = b.middleware[j](h)
		}

		handle := proto.Device(i + 1)
		r.handles[name] = handle
		r.entries[handle] = &entry{device: dev, handler: h, name: name}
	}
	return r, nil
}

// WithDevice registers a device under a class name.
func WithDevice(name string, dev Device) RegistryOption {
	return func(b *registryBuilder) {
		switch {
		case name == "":
			b.errors = append(b.errors, fmt.Errorf("device name cannot be empty"))
		case dev == nil:
			b.errors = append(b.errors, fmt.Errorf("device %q is nil", name))
		default:
			if _, exists := b.devices[name]; exists {
				b.errors = append(b.errors, fmt.Errorf("duplicate device name: %q", name))
				return
			}
			b.devices[name] = dev
		}
	}
}

// WithMiddleware adds middleware applied to every device handler.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// Lookup returns the handle of the named device.
func (r *Registry) Lookup(name string) (proto.Device, bool) {
	h, ok := r.handles[name]
	return h, ok
}

// Name returns the class name of a handle.
func (r *Registry) Name(h proto.Device) (string, bool) {
	e, ok := r.entries[h]
	if !ok {
		return "", false
	}
	return e.name, true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Words returns the payload word count of cmd on the device behind h.
func (r *Registry) Words(h proto.Device, cmd proto.Command) (int, error) {
	e, ok := r.entries[h]
	if !ok {
		return 0, &UnknownDeviceError{Device: h}
	}
	n, ok := e.device.Words(cmd)
	if !ok {
		return 0, &UnknownCommandError{Name: e.name, Cmd: cmd}
	}
	return n, nil
}

// Invoke dispatches req to the device behind h through the middleware chain.
func (r *Registry) Invoke(ctx context.Context, h proto.Device, req *Request) (uint64, error) {
	n, err := r.Words(h, req.Cmd)
	if err != nil {
		return 0, err
	}
	if len(req.Payload) != n {
		return 0, &PayloadError{Cmd: req.Cmd, Want: n, Got: len(req.Payload)}
	}

	e := r.entries[h]
	ctx = WithCall(ctx, Call{Name: e.name, Device: h, Cmd: req.Cmd})
	return e.handler(ctx, req)
}
