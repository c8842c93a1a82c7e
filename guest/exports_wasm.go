//go:build wasip1

package guest

//go:wasmimport aqua_kos call_query
//nolint:revive // intentional snake_case to match WASM import convention
func host_call_query(fn, reserved, name uint64) uint64

//go:wasmimport aqua_kos call_send
//nolint:revive // intentional snake_case to match WASM import convention
func host_call_send(fn, reserved, device, cmd, payload uint64) uint64

//go:wasmexport aqua_set_kos_functions
func setKosFunctions(query, send uint64) {
	std.setKosFunctions(query, send, host_call_query, host_call_send)
}

//go:wasmexport __native_entry
func nativeEntry() {
	std.enter()
}
