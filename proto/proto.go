package proto

import "fmt"

// Device is an opaque host-assigned handle for a named device class.
// The guest never interprets its bits.
type Device uint64

// Command is a 16-bit device opcode.
type Command uint16

// Reserved is the leading parameter passed on every host call.
// It is reserved for a future host context or session identifier.
const Reserved uint64 = 0

// ClassWindow is the device class name of the aquaBSD windowing device.
const ClassWindow = "aquabsd.alps.win"

// Window device commands.
const (
	// WinCreate creates a window. Payload: x resolution, y resolution.
	// Returns the new window handle.
	WinCreate Command = 0x6377

	// WinCaption sets a window caption. Payload: window handle, address of a
	// null-terminated caption.
	WinCaption Command = 0x7363

	// WinClose closes a window. Payload: window handle.
	WinClose Command = 0x6463
)

// words holds the payload word count of every known command, per class.
var words = map[string]map[Command]int{
	ClassWindow: {
		WinCreate:  2,
		WinCaption: 2,
		WinClose:   1,
	},
}

// Words reports the number of payload words cmd takes on devices of the given
// class. The second result is false for unknown classes or commands.
func Words(class string, cmd Command) (int, bool) {
	cmds, ok := words[class]
	if !ok {
		return 0, false
	}
	n, ok := cmds[cmd]
	return n, ok
}

// Commands returns the known commands of a device class and their word counts.
// The returned map is a copy.
func Commands(class string) map[Command]int {
	cmds := words[class]
	out := make(map[Command]int, len(cmds))
	for c, n := range cmds {
		out[c] = n
	}
	return out
}

// String renders the opcode as its two ASCII bytes when both are printable
// ("cw" for WinCreate), and as hex otherwise.
func (c Command) String() string {
	hi, lo := byte(c>>8), byte(c)
	if printable(hi) && printable(lo) {
		return string([]byte{hi, lo})
	}
	return fmt.Sprintf("0x%04x", uint16(c))
}

func printable(b byte) bool {
	return b >= 0x20 && b < 0x7f
}

// String renders the handle in hex.
func (d Device) String() string {
	return fmt.Sprintf("device(0x%x)", uint64(d))
}
