// Package abi manages guest buffers that are handed to the host by address.
//
// The host reads these buffers synchronously while a call is in progress and
// must not retain them afterwards. A Scope owns every buffer created for one
// call, keeps it pinned in place until Release, and is released as soon as the
// call returns.
package abi

import (
	"errors"
	"runtime"
	"strings"
	"unsafe"
)

// ErrInteriorNul is returned when a string cannot be encoded as a
// null-terminated buffer because it already contains a NUL byte.
var ErrInteriorNul = errors.New("abi: string contains an interior NUL byte")

// Scope pins the buffers handed to the host for the duration of one call.
// The zero value is ready to use. A Scope must not be copied after first use.
type Scope struct {
	pinner runtime.Pinner
	bufs   []any // keeps the pinned backing arrays reachable
}

// CString copies s into a new null-terminated buffer, pins it, and returns
// its address.
func (s *Scope) CString(str string) (uint64, error) {
	if strings.IndexByte(str, 0) >= 0 {
		return 0, ErrInteriorNul
	}

	buf := make([]byte, len(str)+1)
	copy(buf, str)

	return s.pin(unsafe.Pointer(&buf[0]), buf), nil
}

// Words copies words into a new buffer of 64-bit words, pins it, and returns
// its address. An empty slice yields address 0.
func (s *Scope) Words(words []uint64) uint64 {
	if len(words) == 0 {
		return 0
	}

	buf := make([]uint64, len(words))
	copy(buf, words)

	return s.pin(unsafe.Pointer(&buf[0]), buf)
}

// Release unpins every buffer created through the scope. It is safe to call
// more than once.
func (s *Scope) Release() {
	s.pinner.Unpin()
	s.bufs = nil
}

func (s *Scope) pin(p unsafe.Pointer, ref any) uint64 {
	s.pinner.Pin(p)
	s.bufs = append(s.bufs, ref)
	return uint64(uintptr(p))
}
