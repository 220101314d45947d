package internal

import (
	"reflect"
	"sync"
)

// ValueVar is a read/write variable that owns its value.
type ValueVar struct {
	// serializes commits; modify closures run holding it
	commitMu sync.Mutex

	mu   sync.RWMutex
	cell Cell
	last UpdateID
	info ModifyInfo

	hooks Hooks
}

func NewValueVar(initial any, typ reflect.Type) *ValueVar {
	return &ValueVar{
		cell: NewCell(initial, typ),
	}
}

func (v *ValueVar) sealed() {}

func (v *ValueVar) Kind() Kind { return KindValue }

func (v *ValueVar) ValueType() reflect.Type { return v.cell.Type() }

func (v *ValueVar) Get() any {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.cell.Get()
}

func (v *ValueVar) Set(value any) bool {
	checkAssignable(v.cell.Type(), value)

	return v.Modify(func(m *ModifyCtx) {
		m.Set(value)
	})
}

func (v *ValueVar) Modify(fn func(*ModifyCtx)) bool {
	v.modifyAs(fn, ModifyInfo{Importance: NextImportance()})
	return true
}

func (v *ValueVar) Update() bool {
	return v.Modify(func(m *ModifyCtx) {
		m.Update()
	})
}

// modifyAs queues a write with an explicit attribution. The importance
// must already be assigned.
func (v *ValueVar) modifyAs(fn func(*ModifyCtx), info ModifyInfo) {
	GetRuntime().Schedule(&modification{target: v, fn: fn, info: info})
}

func (v *ValueVar) Capabilities() Capability {
	return CapNew | CapModify
}

func (v *ValueVar) Hook(fn HookFn) *HookHandle {
	return v.hooks.Push(fn)
}

func (v *ValueVar) LastUpdate() UpdateID {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.last
}

func (v *ValueVar) ModifyInfo() ModifyInfo {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.info
}

func (v *ValueVar) ModifyImportance() uint64 {
	return v.ModifyInfo().Importance
}

func (v *ValueVar) IsAnimating() bool {
	return v.ModifyInfo().IsAnimating()
}

func (v *ValueVar) HookAnimationStop(fn func()) bool {
	info := v.ModifyInfo()
	if !info.IsAnimating() {
		return false
	}

	return info.Animation.OnStop(fn)
}

// commit applies a queued write, stamps it and notifies the hooks. Returns
// false if the write was superseded or left the value unchanged.
func (v *ValueVar) commit(mod *modification, round UpdateID) bool {
	v.commitMu.Lock()

	info := mod.info
	info.Round = round

	v.mu.RLock()
	current := v.info
	raw := v.cell.Raw()
	v.mu.RUnlock()

	if !info.supersedes(current) {
		v.commitMu.Unlock()
		writesSuperseded.Inc()
		return false
	}

	ctx := &ModifyCtx{value: raw, typ: v.cell.Type()}
	mod.fn(ctx)

	if !ctx.Changed() {
		v.commitMu.Unlock()
		return false
	}

	v.mu.Lock()
	v.cell.Set(ctx.value)
	stamp := stampAfter(round, v.last)
	v.last = stamp
	prev := v.info
	v.info = info
	args := &HookArgs{Value: v.cell.Get(), Update: stamp, Tags: ctx.tags}
	v.mu.Unlock()

	v.commitMu.Unlock()
	writesAccepted.Inc()

	if prev.Animation != nil && prev.Animation != info.Animation {
		prev.Animation.Stop()
	}

	v.hooks.Notify(args)
	return true
}
