// Package run implements the `aqua-host run` command.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/aquabsd/aqua-go/config"
	"github.com/aquabsd/aqua-go/devices"
	"github.com/aquabsd/aqua-go/host"
	"github.com/aquabsd/aqua-go/proto"
)

// Command returns the `run` command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run an aqua guest module",
		ArgsUsage: "GUEST.wasm",
		Flags:     Flags(),
		Action:    Run(),
	}
}

// Flags for the `run` command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "load host configuration from `file`",
			EnvVars: []string{"AQUA_CONFIG"},
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "stop the guest after `duration`",
			DefaultText: "from config",
		},
	}
}

// Run the `run` command.
func Run() cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("run: expected exactly one guest module", 2)
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: cfg.Level()}))

		wasm, err := os.ReadFile(c.Args().First())
		if err != nil {
			return fmt.Errorf("read guest: %w", err)
		}

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		windows := devices.NewWindowDevice(
			devices.WithMaxResolution(cfg.Window.MaxWidth, cfg.Window.MaxHeight),
			devices.WithMaxCaption(cfg.Window.MaxCaption),
			devices.WithWindowLogger(logger),
		)
		reg, err := devices.NewRegistry(
			devices.WithMiddleware(
				devices.PanicRecoveryMiddleware(),
				devices.LoggingMiddleware(logger),
			),
			devices.WithDevice(proto.ClassWindow, windows),
		)
		if err != nil {
			return fmt.Errorf("build devices: %w", err)
		}

		exec, err := host.NewExecutor(ctx,
			host.WithDevices(reg),
			host.WithLogger(logger),
			host.WithMemoryLimitPages(cfg.MemoryLimitPages),
			host.WithStdout(c.App.Writer),
			host.WithStderr(c.App.ErrWriter),
		)
		if err != nil {
			return err
		}
		defer exec.Close(context.Background())

		guest, err := exec.LoadGuest(ctx, wasm)
		if err != nil {
			return fmt.Errorf("load guest: %w", err)
		}

		logger.Info("guest started", "path", c.Args().First())
		err = guest.Start(ctx)

		open := windows.Windows()
		logger.Info("guest finished", "closed_windows", windows.Closed(), "open_windows", len(open))
		for _, w := range open {
			logger.Warn("guest left window open", "id", w.ID, "caption", w.Caption)
		}

		if err != nil {
			return fmt.Errorf("run guest: %w", err)
		}
		return nil
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.Path("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	return cfg, cfg.Validate()
}
