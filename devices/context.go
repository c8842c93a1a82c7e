package devices

import (
	"context"

	"github.com/aquabsd/aqua-go/proto"
)

// Call identifies the command being dispatched.
type Call struct {
	Name   string
	Device proto.Device
	Cmd    proto.Command
}

type callKey struct{}

// WithCall returns a context carrying call.
func WithCall(ctx context.Context, call Call) context.Context {
	return context.WithValue(ctx, callKey{}, call)
}

// CallFrom returns the call carried by ctx, if any.
func CallFrom(ctx context.Context) (Call, bool) {
	call, ok := ctx.Value(callKey{}).(Call)
	return call, ok
}
