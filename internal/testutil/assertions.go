// Package testutil provides common test helpers for guest and host tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquabsd/aqua-go/kos"
)

// RequirePrecondition runs fn and requires it to panic with a
// *kos.PreconditionError for op. It returns the recovered error.
func RequirePrecondition(t *testing.T, op string, fn func(), msgAndArgs ...interface{}) *kos.PreconditionError {
	t.Helper()

	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()

	require.NotNil(t, got, msgAndArgs...)
	perr, ok := got.(*kos.PreconditionError)
	require.True(t, ok, "panic value %T is not *kos.PreconditionError", got)
	assert.Equal(t, op, perr.Op, msgAndArgs...)
	return perr
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
