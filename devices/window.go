package devices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aquabsd/aqua-go/proto"
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator instances cache struct metadata.
var validate = validator.New()

// Default window limits.
const (
	DefaultMaxWidth   = 7680
	DefaultMaxHeight  = 4320
	DefaultMaxCaption = 1024
)

// ErrNoWindow is wrapped by window errors for ids that are not open.
var ErrNoWindow = errors.New("no such window")

// Window is the host-side state of one guest window.
type Window struct {
	Caption string
	ID      uint64
	Width   uint32
	Height  uint32
}

type windowConfig struct {
	logger     *slog.Logger
	maxWidth   uint32
	maxHeight  uint32
	maxCaption uint32
}

// WindowOption configures a WindowDevice.
type WindowOption func(*windowConfig)

// WithMaxResolution bounds the resolution a guest may request.
func WithMaxResolution(width, height uint32) WindowOption {
	return func(c *windowConfig) {
		if width > 0 {
			c.maxWidth = width
		}
		if height > 0 {
			c.maxHeight = height
		}
	}
}

// WithMaxCaption bounds caption length in bytes.
func WithMaxCaption(n uint32) WindowOption {
	return func(c *windowConfig) {
		if n > 0 {
			c.maxCaption = n
		}
	}
}

// WithWindowLogger sets the logger for window lifecycle events.
func WithWindowLogger(l *slog.Logger) WindowOption {
	return func(c *windowConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WindowDevice is a headless aquabsd.alps.win device. It keeps a table of
// open windows instead of drawing them.
type WindowDevice struct {
	windows map[uint64]*Window
	cfg     windowConfig
	next    uint64
	closed  int
	mu      sync.Mutex
}

var _ Device = (*WindowDevice)(nil)

// NewWindowDevice creates an empty window device.
func NewWindowDevice(opts ...WindowOption) *WindowDevice {
	cfg := windowConfig{
		logger:     slog.Default(),
		maxWidth:   DefaultMaxWidth,
		maxHeight:  DefaultMaxHeight,
		maxCaption: DefaultMaxCaption,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WindowDevice{
		windows: make(map[uint64]*Window),
		cfg:     cfg,
		next:    1,
	}
}

// Words implements Device.
func (d *WindowDevice) Words(cmd proto.Command) (int, bool) {
	return proto.Words(proto.ClassWindow, cmd)
}

// Handle implements Device.
func (d *WindowDevice) Handle(_ context.Context, req *Request) (uint64, error) {
	switch req.Cmd {
	case proto.WinCreate:
		return d.create(req.Payload[0], req.Payload[1])
	case proto.WinCaption:
		return 0, d.caption(req.Payload[0], req.Payload[1], req.Memory)
	case proto.WinClose:
		return 0, d.close(req.Payload[0])
	default:
		return 0, &UnknownCommandError{Name: proto.ClassWindow, Cmd: req.Cmd}
	}
}

func (d *WindowDevice) create(width, height uint64) (uint64, error) {
	if err := validate.Var(width, fmt.Sprintf("gt=0,lte=%d", d.cfg.maxWidth)); err != nil {
		return 0, &WindowError{Op: "create", Err: fmt.Errorf("width %d: %w", width, err)}
	}
	if err := validate.Var(height, fmt.Sprintf("gt=0,lte=%d", d.cfg.maxHeight)); err != nil {
		return 0, &WindowError{Op: "create", Err: fmt.Errorf("height %d: %w", height, err)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.next
	d.next++
	d.windows[id] = &Window{ID: id, Width: uint32(width), Height: uint32(height)}

	d.cfg.logger.Info("window created", "id", id, "width", width, "height", height)
	return id, nil
}

func (d *WindowDevice) caption(id, addr uint64, mem Memory) error {
	if mem == nil {
		return &WindowError{Op: "caption", Window: id, Err: errors.New("no guest memory")}
	}
	text, ok := mem.ReadCString(addr, d.cfg.maxCaption)
	if !ok {
		return &WindowError{Op: "caption", Window: id, Err: fmt.Errorf("unreadable caption at 0x%x", addr)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.windows[id]
	if !ok {
		return &WindowError{Op: "caption", Window: id, Err: ErrNoWindow}
	}
	w.Caption = text

	d.cfg.logger.Info("window caption", "id", id, "caption", text)
	return nil
}

func (d *WindowDevice) close(id uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.windows[id]; !ok {
		return &WindowError{Op: "close", Window: id, Err: ErrNoWindow}
	}
	delete(d.windows, id)
	d.closed++

	d.cfg.logger.Info("window closed", "id", id)
	return nil
}

// Windows returns a snapshot of the open windows ordered by id.
func (d *WindowDevice) Windows() []Window {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Window, 0, len(d.windows))
	for _, w := range d.windows {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Closed returns how many windows have been closed.
func (d *WindowDevice) Closed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
