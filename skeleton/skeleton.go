// Package skeleton is the example aqua guest program: it opens a window,
// sets its caption, waits, and closes the window on the way out.
package skeleton

import (
	"log/slog"
	"time"

	"github.com/aquabsd/aqua-go/kos"
	"github.com/aquabsd/aqua-go/win"
)

// The window the skeleton opens, and how long it stays up.
const (
	Width   = 800
	Height  = 600
	Caption = "Bob AQUA Skeleton"
	Delay   = 3 * time.Second
)

type config struct {
	sleep  func(time.Duration)
	delay  time.Duration
	logger *slog.Logger
}

// Option configures Run.
type Option func(*config)

// WithSleep replaces time.Sleep, for tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *config) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithDelay sets how long the window stays open.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run is the guest program body.
func Run(b *kos.Bridge, opts ...Option) {
	cfg := config{
		sleep:  time.Sleep,
		delay:  Delay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := win.Open(b, Width, Height)
	defer w.Close()
	cfg.logger.Info("window opened", "handle", w.Handle(), "width", Width, "height", Height)

	w.SetCaption(Caption)
	cfg.sleep(cfg.delay)
}
