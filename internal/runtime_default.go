//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// peekRuntime returns the goroutine's runtime without creating one.
func peekRuntime() *Runtime {
	if r, ok := runtimes.Load(getGID()); ok {
		return r.(*Runtime)
	}

	return nil
}

// release forgets the runtime once nothing is in flight, so goroutines
// that are done writing do not leak one.
func (r *Runtime) release() {
	if r.idle() {
		runtimes.CompareAndDelete(getGID(), r)
	}
}

func getGID() int64 {
	return goid.Get()
}
