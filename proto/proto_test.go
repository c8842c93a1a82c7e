package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{WinCreate, "cw"},
		{WinCaption, "sc"},
		{WinClose, "dc"},
		{0x0001, "0x0001"},
		{0xff41, "0xff41"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestWords(t *testing.T) {
	t.Run("window commands", func(t *testing.T) {
		n, ok := Words(ClassWindow, WinCreate)
		assert.True(t, ok)
		assert.Equal(t, 2, n)

		n, ok = Words(ClassWindow, WinCaption)
		assert.True(t, ok)
		assert.Equal(t, 2, n)

		n, ok = Words(ClassWindow, WinClose)
		assert.True(t, ok)
		assert.Equal(t, 1, n)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, ok := Words(ClassWindow, 0x1234)
		assert.False(t, ok)
	})

	t.Run("unknown class", func(t *testing.T) {
		_, ok := Words("aquabsd.alps.mouse", WinCreate)
		assert.False(t, ok)
	})
}

func TestCommands_ReturnsCopy(t *testing.T) {
	cmds := Commands(ClassWindow)
	assert.Len(t, cmds, 3)

	cmds[WinCreate] = 99
	n, _ := Words(ClassWindow, WinCreate)
	assert.Equal(t, 2, n)

	assert.Empty(t, Commands("unknown"))
}

func TestDevice_String(t *testing.T) {
	assert.Equal(t, "device(0x2a)", Device(42).String())
}
