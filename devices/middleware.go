package devices

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps a Handler to add cross-cutting behaviour.
// Middleware executes in FIFO order (first registered wraps outermost).
type Middleware func(next Handler) Handler

// PanicRecoveryMiddleware converts handler panics into *PanicError so that a
// faulty device cannot crash the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (res uint64, err error) {
			defer func() {
				if r := recover(); r != nil {
					res, err = 0, &PanicError{Value: r}
				}
			}()
			return next(ctx, req)
		}
	}
}

// LoggingMiddleware logs every command at debug level, failures included.
// Reporting failures to operators is left to the caller of Registry.Invoke.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (uint64, error) {
			call, _ := CallFrom(ctx)
			start := time.Now()

			res, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("device", call.Name),
				slog.String("cmd", req.Cmd.String()),
				slog.Any("payload", req.Payload),
				slog.Duration("took", time.Since(start)),
			}
			msg := "device command"
			if err != nil {
				msg = "device command failed"
				attrs = append(attrs, slog.Any("error", err))
			} else {
				attrs = append(attrs, slog.Uint64("result", res))
			}
			logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
			return res, err
		}
	}
}
