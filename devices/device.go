package devices

import (
	"context"

	"github.com/aquabsd/aqua-go/proto"
)

// Memory is a read-only view of guest memory, used to dereference addresses
// carried in payloads. Addresses are only valid during the command.
type Memory interface {
	ReadCString(addr uint64, max uint32) (string, bool)
}

// Request is one decoded command.
type Request struct {
	Cmd     proto.Command
	Payload []uint64
	Memory  Memory
}

// Device serves the commands of one device class.
type Device interface {
	// Words reports the payload word count of cmd, or false if the device
	// does not support cmd.
	Words(cmd proto.Command) (int, bool)

	// Handle executes a command. The payload has exactly Words(cmd) words.
	Handle(ctx context.Context, req *Request) (uint64, error)
}

// Handler is the function form of Device.Handle that middleware wraps.
type Handler func(ctx context.Context, req *Request) (uint64, error)
