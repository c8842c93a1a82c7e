// Command skeleton is the example aqua guest.
//
// Build it as a WASI reactor and run it with aqua-host:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o skeleton.wasm ./cmd/skeleton
//	aqua-host run skeleton.wasm
package main

import (
	"github.com/aquabsd/aqua-go/guest"
	"github.com/aquabsd/aqua-go/kos"
	"github.com/aquabsd/aqua-go/skeleton"
)

func init() {
	guest.SetEntry(func(b *kos.Bridge) {
		skeleton.Run(b)
	})
}

// main is not called in reactor mode; the host enters through __native_entry.
func main() {}
