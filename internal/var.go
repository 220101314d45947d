package internal

import (
	"reflect"
	"strings"
)

// Capability describes what a variable instance can do.
type Capability uint8

const (
	// CapNew means the value can update.
	CapNew Capability = 1 << iota
	// CapModify means writes are accepted.
	CapModify
	// CapContext means the value depends on the observing context.
	CapContext
	// CapModifyChanges means CapModify can appear or disappear at runtime.
	CapModifyChanges
	// CapContextChanges means CapContext can appear or disappear at runtime.
	CapContextChanges
)

func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}

	names := []string{}
	for _, f := range []struct {
		flag Capability
		name string
	}{
		{CapNew, "new"},
		{CapModify, "modify"},
		{CapContext, "context"},
		{CapModifyChanges, "modify_changes"},
		{CapContextChanges, "context_changes"},
	} {
		if c.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}

// Kind tags the concrete variable implementation. The set is closed.
type Kind uint8

const (
	KindConst Kind = iota
	KindValue
	KindReadOnly
	KindMap
	KindContextual
	KindWhen
	KindAnimatingWhen
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindValue:
		return "value"
	case KindReadOnly:
		return "read_only"
	case KindMap:
		return "map"
	case KindContextual:
		return "contextual"
	case KindWhen:
		return "when"
	case KindAnimatingWhen:
		return "animating_when"
	}
	return "unknown"
}

// AnyVar is the type-erased variable contract.
type AnyVar interface {
	Kind() Kind
	ValueType() reflect.Type

	// Get returns a snapshot of the current value.
	Get() any

	// Set requests an overwrite. Returns false when the variable cannot be
	// modified. The value becomes visible at the end of the current update
	// cycle.
	Set(value any) bool

	// Modify requests an in-place change; same acceptance as Set.
	Modify(fn func(*ModifyCtx)) bool

	// Update flags the variable as new in the next cycle without changing
	// its value.
	Update() bool

	Capabilities() Capability

	// Hook registers an observer. See HookHandle for its lifetime.
	Hook(fn HookFn) *HookHandle

	LastUpdate() UpdateID
	ModifyInfo() ModifyInfo
	ModifyImportance() uint64

	IsAnimating() bool

	// HookAnimationStop registers fn to run when the current animation
	// stops. Returns false if the variable is not animating.
	HookAnimationStop(fn func()) bool

	sealed()
}

// ContextBound is implemented by variables that resolve to a different
// instance per context.
type ContextBound interface {
	AnyVar

	// In returns the instance for ctx, building it on first use.
	In(ctx ContextID) AnyVar

	Contexts() ContextSource
}

// resolveIn returns the instance of v as seen from ctx.
func resolveIn(v AnyVar, ctx ContextID) AnyVar {
	if cb, ok := v.(ContextBound); ok {
		return cb.In(ctx)
	}

	return v
}

func isContextual(v AnyVar) bool {
	return v.Capabilities().Has(CapContext)
}

func deny() bool {
	writesDenied.Inc()
	return false
}

var boolType = reflect.TypeFor[bool]()
