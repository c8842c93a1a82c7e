package kostest

import "unsafe"

// ReadCString reads the null-terminated string at addr, scanning at most max
// bytes. It reports false for address 0 or a missing terminator.
//
// addr must point into live memory of this process, such as a buffer a
// bridge call has pinned for the host.
func ReadCString(addr uint64, max int) (string, bool) {
	if addr == 0 {
		return "", false
	}

	base := pointer(addr)
	for i := 0; i < max; i++ {
		if *(*byte)(unsafe.Add(base, i)) == 0 {
			return string(unsafe.Slice((*byte)(base), i)), true
		}
	}
	return "", false
}

// ReadWords copies n 64-bit words starting at addr.
// addr must point into live memory of this process.
func ReadWords(addr uint64, n int) []uint64 {
	if addr == 0 || n <= 0 {
		return nil
	}

	out := make([]uint64, n)
	copy(out, unsafe.Slice((*uint64)(pointer(addr)), n))
	return out
}

// pointer reinterprets addr as a pointer to pinned memory.
func pointer(addr uint64) unsafe.Pointer {
	p := uintptr(addr)
	return *(*unsafe.Pointer)(unsafe.Pointer(&p))
}
