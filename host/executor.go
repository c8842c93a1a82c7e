package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aquabsd/aqua-go/devices"
	"github.com/aquabsd/aqua-go/proto"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// Guest exports called by the host.
const (
	ExportSetFunctions = "aqua_set_kos_functions"
	ExportEntry        = "__native_entry"
)

// Executor owns a wazero runtime with the aqua_kos module instantiated.
type Executor struct {
	runtime          wazero.Runtime
	devices          *devices.Registry
	logger           *slog.Logger
	stdout           io.Writer
	stderr           io.Writer
	memoryLimitPages uint32
}

// NewExecutor creates a new executor with the given options. Without
// WithDevices it serves a single headless window device.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		logger: slog.Default(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.devices == nil {
		reg, err := devices.NewRegistry(
			devices.WithMiddleware(
				devices.PanicRecoveryMiddleware(),
				devices.LoggingMiddleware(e.logger),
			),
			devices.WithDevice(proto.ClassWindow, devices.NewWindowDevice(devices.WithWindowLogger(e.logger))),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create default devices: %w", err)
		}
		e.devices = reg
	}

	cfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if e.memoryLimitPages > 0 {
		cfg = cfg.WithMemoryLimitPages(e.memoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerKOS(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register %s module: %w", ModuleName, err)
	}

	return e, nil
}

// Devices returns the registry served to guests.
func (e *Executor) Devices() *devices.Registry {
	return e.devices
}

// Close releases resources held by the executor, including every guest.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// GuestInstance is an instantiated aqua guest.
type GuestInstance struct {
	module api.Module
	logger *slog.Logger
}

// MissingExportError is returned when a module is not an aqua guest.
type MissingExportError struct {
	Name string
}

func (e *MissingExportError) Error() string {
	return fmt.Sprintf("guest does not export %q", e.Name)
}

// LoadGuest instantiates a guest reactor module and runs its initialiser.
func (e *Executor) LoadGuest(ctx context.Context, wasmBytes []byte) (*GuestInstance, error) {
	cfg := wazero.NewModuleConfig().
		WithName("aqua_guest").
		WithStdout(e.stdout).
		WithStderr(e.stderr).
		WithSysWalltime().
		WithSysNanotime().
		WithSysNanosleep().
		WithStartFunctions()

	mod, err := e.runtime.InstantiateWithConfig(ctx, wasmBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	for _, name := range []string{ExportSetFunctions, ExportEntry} {
		if mod.ExportedFunction(name) == nil {
			mod.Close(ctx)
			return nil, &MissingExportError{Name: name}
		}
	}

	if initFn := mod.ExportedFunction("_initialize"); initFn != nil {
		if _, err := initFn.Call(ctx); err != nil {
			mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &GuestInstance{module: mod, logger: e.logger}, nil
}

// Start hands the guest its host functions and runs its entry point to
// completion. A guest exiting with status 0 is not an error.
func (g *GuestInstance) Start(ctx context.Context) error {
	set := g.module.ExportedFunction(ExportSetFunctions)
	if _, err := set.Call(ctx, QueryFunction, SendFunction); err != nil {
		return exitError(ExportSetFunctions, err)
	}
	g.logger.Debug("guest host functions set")

	entry := g.module.ExportedFunction(ExportEntry)
	if _, err := entry.Call(ctx); err != nil {
		return exitError(ExportEntry, err)
	}
	g.logger.Debug("guest entry returned")
	return nil
}

// Close releases the guest module.
func (g *GuestInstance) Close(ctx context.Context) error {
	return g.module.Close(ctx)
}

func exitError(fn string, err error) error {
	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
		return nil
	}
	return fmt.Errorf("guest %s: %w", fn, err)
}
