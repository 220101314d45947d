package internal

import (
	"reflect"
	"sync"
	"weak"
)

// MapVar is a read-only variable derived from a source through a
// function. It recomputes inside a hook on the source.
type MapVar struct {
	source AnyVar
	fn     func(any) any
	typ    reflect.Type

	mu    sync.RWMutex
	value any
	last  UpdateID

	hooks  Hooks
	handle *HookHandle
}

// NewMapVar derives a variable from source. Sources that never update map
// to a constant; contextual sources map per context.
func NewMapVar(source AnyVar, typ reflect.Type, fn func(any) any) AnyVar {
	if cb, ok := source.(ContextBound); ok && isContextual(source) {
		return NewContextualVar(typ, func(ctx ContextID) AnyVar {
			return NewMapVar(cb.In(ctx), typ, fn)
		}, cb.Contexts())
	}

	if !source.Capabilities().Has(CapNew) {
		return NewConstVar(fn(source.Get()), typ)
	}

	m := &MapVar{
		source: source,
		fn:     fn,
		typ:    typ,
	}

	wk := weak.Make(m)
	m.handle = source.Hook(func(args *HookArgs) bool {
		m := wk.Value()
		if m == nil {
			return false
		}

		m.recompute(args)
		return true
	})

	m.value = fn(source.Get())
	checkAssignable(typ, m.value)
	m.last = source.LastUpdate()

	return m
}

func (m *MapVar) recompute(args *HookArgs) {
	value := m.fn(args.Value)
	checkAssignable(m.typ, value)

	m.mu.Lock()
	m.value = value
	m.last = maxUpdate(m.last, args.Update)
	update := m.last
	m.mu.Unlock()

	m.hooks.Notify(&HookArgs{Value: value, Update: update, Tags: args.Tags})
}

func (m *MapVar) sealed() {}

func (m *MapVar) Kind() Kind              { return KindMap }
func (m *MapVar) ValueType() reflect.Type { return m.typ }

func (m *MapVar) Get() any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.value
}

func (m *MapVar) Set(any) bool                 { return deny() }
func (m *MapVar) Modify(func(*ModifyCtx)) bool { return deny() }
func (m *MapVar) Update() bool                 { return deny() }

func (m *MapVar) Capabilities() Capability {
	return m.source.Capabilities() & (CapNew | CapContext | CapContextChanges)
}

func (m *MapVar) Hook(fn HookFn) *HookHandle {
	return m.hooks.Push(fn)
}

func (m *MapVar) LastUpdate() UpdateID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.last
}

func (m *MapVar) ModifyInfo() ModifyInfo           { return m.source.ModifyInfo() }
func (m *MapVar) ModifyImportance() uint64         { return m.source.ModifyImportance() }
func (m *MapVar) IsAnimating() bool                { return m.source.IsAnimating() }
func (m *MapVar) HookAnimationStop(fn func()) bool { return m.source.HookAnimationStop(fn) }
