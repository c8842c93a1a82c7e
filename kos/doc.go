// Package kos is the guest side of the aqua host bridge.
//
// The host hands the guest two opaque functions at startup: one resolves a
// device class name to a device handle, the other sends a command to a device.
// A Bridge stores them once and exposes typed wrappers, QueryDevice and Send,
// so that code above it never deals with raw addresses.
//
// Using a Bridge before Initialize, or initialising it twice, is a programming
// error and panics with a *PreconditionError.
package kos
