package devices

import (
	"context"

	"github.com/aquabsd/aqua-go/proto"
)

// fakeMemory resolves addresses to strings.
type fakeMemory map[uint64]string

func (m fakeMemory) ReadCString(addr uint64, max uint32) (string, bool) {
	s, ok := m[addr]
	if !ok || uint32(len(s)) >= max {
		return "", false
	}
	return s, true
}

// echoDevice supports one command that returns its first payload word.
type echoDevice struct {
	cmd   proto.Command
	words int
	calls int
}

func (d *echoDevice) Words(cmd proto.Command) (int, bool) {
	if cmd != d.cmd {
		return 0, false
	}
	return d.words, true
}

func (d *echoDevice) Handle(_ context.Context, req *Request) (uint64, error) {
	d.calls++
	if len(req.Payload) == 0 {
		return 0, nil
	}
	return req.Payload[0], nil
}
