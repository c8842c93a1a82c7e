// Package proto defines the device handle and command conventions shared by
// aqua guests and the host runtime.
//
// A command is a 16-bit opcode sent to a device handle together with a
// payload of 64-bit words. The payload carries no length: the number of words
// is agreed per command, out of band, between the guest and the host. Pointers
// embedded in a payload are raw guest addresses that the host dereferences
// synchronously and never retains.
package proto
