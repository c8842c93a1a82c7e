// Package devices implements the host side of aqua devices.
// It has no wasm runtime dependency: a Registry maps device class names to
// handles and dispatches decoded commands to Device implementations, so any
// host runtime can serve guests with it.
package devices
