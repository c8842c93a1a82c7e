package testutil

// Memory offsets used by the window guest.
const (
	// GuestInitMarker holds a uint32 that _initialize sets to 1.
	GuestInitMarker = 0x300
	// GuestExitFlag makes __native_entry finish with proc_exit(0) when non-zero.
	GuestExitFlag = 0x304
)

// WindowGuest returns a minimal aqua guest reactor. Its exports are memory,
// aqua_set_kos_functions, __native_entry and _initialize; it imports
// aqua_kos.call_query, aqua_kos.call_send and wasi proc_exit.
//
// __native_entry queries "aquabsd.alps.win", creates an 800x600 window,
// sets its caption to "Test" and closes it:
//
//	(local $dev i64) (local $win i64)
//	(local.set $dev (call $call_query (global.get $query) (i64.const 0) (i64.const 0x100)))
//	(i64.store (i32.const 0x200) (i64.const 800))
//	(i64.store (i32.const 0x208) (i64.const 600))
//	(local.set $win (call $call_send (global.get $send) (i64.const 0) (local.get $dev) (i64.const 0x6377) (i64.const 0x200)))
//	(i64.store (i32.const 0x210) (local.get $win))
//	(i64.store (i32.const 0x218) (i64.const 0x120))
//	(drop (call $call_send (global.get $send) (i64.const 0) (local.get $dev) (i64.const 0x7363) (i64.const 0x210)))
//	(drop (call $call_send (global.get $send) (i64.const 0) (local.get $dev) (i64.const 0x6463) (i64.const 0x210)))
//	(if (i32.load (i32.const 0x304)) (then (call $proc_exit (i32.const 0))))
func WindowGuest() []byte {
	return append([]byte(nil), windowGuest...)
}

var windowGuest = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, 0x01, 0x1d, 0x05, 0x60,
	0x03, 0x7e, 0x7e, 0x7e, 0x01, 0x7e, 0x60, 0x05, 0x7e, 0x7e, 0x7e, 0x7e,
	0x7e, 0x01, 0x7e, 0x60, 0x02, 0x7e, 0x7e, 0x00, 0x60, 0x00, 0x00, 0x60,
	0x01, 0x7f, 0x00, 0x02, 0x4f, 0x03, 0x08, 0x61, 0x71, 0x75, 0x61, 0x5f,
	0x6b, 0x6f, 0x73, 0x0a, 0x63, 0x61, 0x6c, 0x6c, 0x5f, 0x71, 0x75, 0x65,
	0x72, 0x79, 0x00, 0x00, 0x08, 0x61, 0x71, 0x75, 0x61, 0x5f, 0x6b, 0x6f,
	0x73, 0x09, 0x63, 0x61, 0x6c, 0x6c, 0x5f, 0x73, 0x65, 0x6e, 0x64, 0x00,
	0x01, 0x16, 0x77, 0x61, 0x73, 0x69, 0x5f, 0x73, 0x6e, 0x61, 0x70, 0x73,
	0x68, 0x6f, 0x74, 0x5f, 0x70, 0x72, 0x65, 0x76, 0x69, 0x65, 0x77, 0x31,
	0x09, 0x70, 0x72, 0x6f, 0x63, 0x5f, 0x65, 0x78, 0x69, 0x74, 0x00, 0x04,
	0x03, 0x04, 0x03, 0x02, 0x03, 0x03, 0x05, 0x03, 0x01, 0x00, 0x01, 0x06,
	0x0b, 0x02, 0x7e, 0x01, 0x42, 0x00, 0x0b, 0x7e, 0x01, 0x42, 0x00, 0x0b,
	0x07, 0x42, 0x04, 0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00,
	0x16, 0x61, 0x71, 0x75, 0x61, 0x5f, 0x73, 0x65, 0x74, 0x5f, 0x6b, 0x6f,
	0x73, 0x5f, 0x66, 0x75, 0x6e, 0x63, 0x74, 0x69, 0x6f, 0x6e, 0x73, 0x00,
	0x03, 0x0e, 0x5f, 0x5f, 0x6e, 0x61, 0x74, 0x69, 0x76, 0x65, 0x5f, 0x65,
	0x6e, 0x74, 0x72, 0x79, 0x00, 0x04, 0x0b, 0x5f, 0x69, 0x6e, 0x69, 0x74,
	0x69, 0x61, 0x6c, 0x69, 0x7a, 0x65, 0x00, 0x05, 0x0a, 0x88, 0x01, 0x03,
	0x0a, 0x00, 0x20, 0x00, 0x24, 0x00, 0x20, 0x01, 0x24, 0x01, 0x0b, 0x70,
	0x01, 0x02, 0x7e, 0x23, 0x00, 0x42, 0x00, 0x42, 0x80, 0x02, 0x10, 0x00,
	0x21, 0x00, 0x41, 0x80, 0x04, 0x42, 0xa0, 0x06, 0x37, 0x03, 0x00, 0x41,
	0x88, 0x04, 0x42, 0xd8, 0x04, 0x37, 0x03, 0x00, 0x23, 0x01, 0x42, 0x00,
	0x20, 0x00, 0x42, 0xf7, 0xc6, 0x01, 0x42, 0x80, 0x04, 0x10, 0x01, 0x21,
	0x01, 0x41, 0x90, 0x04, 0x20, 0x01, 0x37, 0x03, 0x00, 0x41, 0x98, 0x04,
	0x42, 0xa0, 0x02, 0x37, 0x03, 0x00, 0x23, 0x01, 0x42, 0x00, 0x20, 0x00,
	0x42, 0xe3, 0xe6, 0x01, 0x42, 0x90, 0x04, 0x10, 0x01, 0x1a, 0x23, 0x01,
	0x42, 0x00, 0x20, 0x00, 0x42, 0xe3, 0xc8, 0x01, 0x42, 0x90, 0x04, 0x10,
	0x01, 0x1a, 0x41, 0x84, 0x06, 0x28, 0x02, 0x00, 0x04, 0x40, 0x41, 0x00,
	0x10, 0x02, 0x0b, 0x0b, 0x0a, 0x00, 0x41, 0x80, 0x06, 0x41, 0x01, 0x36,
	0x02, 0x00, 0x0b, 0x0b, 0x23, 0x02, 0x00, 0x41, 0x80, 0x02, 0x0b, 0x11,
	0x61, 0x71, 0x75, 0x61, 0x62, 0x73, 0x64, 0x2e, 0x61, 0x6c, 0x70, 0x73,
	0x2e, 0x77, 0x69, 0x6e, 0x00, 0x00, 0x41, 0xa0, 0x02, 0x0b, 0x05, 0x54,
	0x65, 0x73, 0x74, 0x00,
}
