// Package guest binds an aqua guest to its host.
//
// Built for wasip1 as a reactor (-buildmode=c-shared), the package exports
// the two functions the host calls:
//
//	aqua_set_kos_functions(query, send i64)
//	__native_entry()
//
// The host passes opaque function handles rather than callable pointers. The
// guest calls them back through the aqua_kos.call_query and aqua_kos.call_send
// imports, which take the handle as their first argument. Everything above
// this package sees only the typed *kos.Bridge.
package guest
