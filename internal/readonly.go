package internal

import "reflect"

// ReadOnlyVar is a view of another variable that rejects writes.
type ReadOnlyVar struct {
	source AnyVar
}

// NewReadOnlyVar wraps source. Variables that are already read-only are
// returned as is.
func NewReadOnlyVar(source AnyVar) AnyVar {
	switch source.Kind() {
	case KindConst, KindReadOnly, KindMap, KindAnimatingWhen:
		return source
	}

	if !source.Capabilities().Has(CapModify) && !source.Capabilities().Has(CapModifyChanges) {
		return source
	}

	return &ReadOnlyVar{source: source}
}

func (r *ReadOnlyVar) sealed() {}

func (r *ReadOnlyVar) Kind() Kind                   { return KindReadOnly }
func (r *ReadOnlyVar) ValueType() reflect.Type      { return r.source.ValueType() }
func (r *ReadOnlyVar) Get() any                     { return r.source.Get() }
func (r *ReadOnlyVar) Set(any) bool                 { return deny() }
func (r *ReadOnlyVar) Modify(func(*ModifyCtx)) bool { return deny() }
func (r *ReadOnlyVar) Update() bool                 { return deny() }

func (r *ReadOnlyVar) Capabilities() Capability {
	return r.source.Capabilities() &^ (CapModify | CapModifyChanges)
}

func (r *ReadOnlyVar) Hook(fn HookFn) *HookHandle { return r.source.Hook(fn) }
func (r *ReadOnlyVar) LastUpdate() UpdateID       { return r.source.LastUpdate() }
func (r *ReadOnlyVar) ModifyInfo() ModifyInfo     { return r.source.ModifyInfo() }
func (r *ReadOnlyVar) ModifyImportance() uint64   { return r.source.ModifyImportance() }
func (r *ReadOnlyVar) IsAnimating() bool          { return r.source.IsAnimating() }

func (r *ReadOnlyVar) HookAnimationStop(fn func()) bool {
	return r.source.HookAnimationStop(fn)
}
