package internal

import (
	"slices"
	"sync"
	"sync/atomic"
	"weak"
)

// HookArgs is what a hook receives when the variable it observes updates.
// Value is a snapshot; it must not be retained for mutation.
type HookArgs struct {
	Value  any
	Update UpdateID
	Tags   []any
}

// HookFn observes a variable. Returning false removes the hook.
type HookFn func(args *HookArgs) bool

type hookEntry struct {
	fn HookFn

	// the hook lives as long as its handle, unless made permanent
	handle  weak.Pointer[HookHandle]
	perm    atomic.Bool
	removed atomic.Bool
}

func (e *hookEntry) live() bool {
	if e.removed.Load() {
		return false
	}

	return e.perm.Load() || e.handle.Value() != nil
}

// HookHandle controls a registered hook. Dropping the handle removes the
// hook unless Perm was called.
type HookHandle struct {
	entry *hookEntry
}

// NewDummyHook returns a handle not attached to anything, for variables
// that never update.
func NewDummyHook() *HookHandle {
	return &HookHandle{}
}

// Perm detaches the hook from the handle lifetime.
func (h *HookHandle) Perm() {
	if h != nil && h.entry != nil {
		h.entry.perm.Store(true)
	}
}

// Unhook removes the hook now.
func (h *HookHandle) Unhook() {
	if h != nil && h.entry != nil {
		h.entry.removed.Store(true)
	}
}

// IsDummy reports whether the handle was never attached to a hook.
func (h *HookHandle) IsDummy() bool {
	return h == nil || h.entry == nil
}

// Hooks is an ordered set of observers of one variable instance.
type Hooks struct {
	mu      sync.Mutex
	entries []*hookEntry
}

func (h *Hooks) Push(fn HookFn) *HookHandle {
	entry := &hookEntry{fn: fn}
	handle := &HookHandle{entry: entry}
	entry.handle = weak.Make(handle)

	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()

	return handle
}

// Notify calls every live hook in registration order on the calling
// goroutine. Hooks pushed while notifying are not called for this update.
func (h *Hooks) Notify(args *HookArgs) {
	h.mu.Lock()
	h.prune()
	// clonning to avoid mutation during iteration
	entries := slices.Clone(h.entries)
	h.mu.Unlock()

	stopped := false
	for _, e := range entries {
		if !e.live() {
			continue
		}

		hookCallsTotal.Inc()
		if !e.fn(args) {
			e.removed.Store(true)
			stopped = true
		}
	}

	if stopped {
		h.mu.Lock()
		h.prune()
		h.mu.Unlock()
	}
}

// Len returns the number of live hooks.
func (h *Hooks) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.prune()
	return len(h.entries)
}

func (h *Hooks) prune() {
	h.entries = slices.DeleteFunc(h.entries, func(e *hookEntry) bool {
		return !e.live()
	})
}
