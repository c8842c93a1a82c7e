// Package host runs aqua guests on wazero.
//
// It instantiates a guest reactor module, provides the aqua_kos host module
// whose call_query and call_send functions serve the guest's device queries
// and commands from a devices.Registry, hands the guest the two function
// handles through aqua_set_kos_functions, and enters it through
// __native_entry.
//
// Failures while serving a guest call are logged and reported to the guest as
// 0; the guest ABI has no error channel.
package host
