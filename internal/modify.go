package internal

import (
	"reflect"
	"sync/atomic"
)

var importances atomic.Uint64

// NextImportance issues a modify importance. Importances only grow, so a
// write issued from a hook always outranks the write that fired it.
func NextImportance() uint64 {
	return importances.Add(1)
}

// ModifyInfo attributes the write that produced a variable's value.
type ModifyInfo struct {
	Importance uint64

	// Round is the commit round the write was applied in.
	Round UpdateID

	// Animation is set when the write came from a running animation.
	Animation *Animation
}

// supersedes reports whether m may replace cur. Greater importance wins;
// equal importance only wins from a later round (animation frames), so
// within one round the earlier write stays.
func (m ModifyInfo) supersedes(cur ModifyInfo) bool {
	if m.Importance != cur.Importance {
		return m.Importance > cur.Importance
	}

	return m.Round != cur.Round
}

// IsAnimating reports whether the write came from a still-running animation.
func (m ModifyInfo) IsAnimating() bool {
	return m.Animation != nil && !m.Animation.Stopped()
}

// ModifyCtx is handed to Modify closures. The value is not cloned.
type ModifyCtx struct {
	value   any
	typ     reflect.Type
	changed bool
	tags    []any
}

func (m *ModifyCtx) Value() any {
	return m.value
}

// Set replaces the value and flags the variable as updated.
func (m *ModifyCtx) Set(value any) {
	checkAssignable(m.typ, value)
	m.value = value
	m.changed = true
}

// Update flags the variable as updated, e.g. after an in-place mutation.
func (m *ModifyCtx) Update() {
	m.changed = true
}

// PushTag attaches metadata to the hook notification.
func (m *ModifyCtx) PushTag(tag any) {
	m.tags = append(m.tags, tag)
}

func (m *ModifyCtx) Changed() bool {
	return m.changed
}
