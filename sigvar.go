package sigvar

import (
	"reflect"

	"github.com/AnatoleLucet/sigvar/internal"
)

type (
	AnyVar     = internal.AnyVar
	Capability = internal.Capability
	Kind       = internal.Kind
	UpdateID   = internal.UpdateID
	HookHandle = internal.HookHandle
	ModifyInfo = internal.ModifyInfo
)

const (
	CapNew            = internal.CapNew
	CapModify         = internal.CapModify
	CapContext        = internal.CapContext
	CapModifyChanges  = internal.CapModifyChanges
	CapContextChanges = internal.CapContextChanges
)

// Never is the update stamp of a variable that has not updated since it
// was created.
const Never = internal.Never

var (
	ErrTypeMismatch = internal.ErrTypeMismatch
	ErrNotBool      = internal.ErrNotBool
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Var is a typed handle to a variable: a value that can change over time
// and be observed.
type Var[T any] struct {
	v internal.AnyVar
}

// NewVar creates a read/write variable.
func NewVar[T any](initial T) *Var[T] {
	return &Var[T]{internal.NewValueVar(initial, reflect.TypeFor[T]())}
}

// NewConst creates a variable that never changes and rejects writes.
func NewConst[T any](value T) *Var[T] {
	return &Var[T]{internal.NewConstVar(value, reflect.TypeFor[T]())}
}

// FromAny projects a type-erased variable. It panics with ErrTypeMismatch
// if the variable does not hold a T.
func FromAny[T any](v AnyVar) *Var[T] {
	if want := reflect.TypeFor[T](); v.ValueType() != want {
		panic(internal.TypeMismatch(v.ValueType(), want))
	}

	return &Var[T]{v}
}

// Any returns the type-erased variable.
func (v *Var[T]) Any() AnyVar { return v.v }

// Get returns a snapshot of the current value.
func (v *Var[T]) Get() T {
	return as[T](v.v.Get())
}

// Set requests a new value. Check the result: read-only variables return
// false. The value is visible once the current update cycle commits, which
// outside of Update is before Set returns.
func (v *Var[T]) Set(value T) bool {
	return v.v.Set(value)
}

// Modify requests an in-place change. Same acceptance as Set.
func (v *Var[T]) Modify(fn func(m *Modify[T])) bool {
	return v.v.Modify(func(ctx *internal.ModifyCtx) {
		fn(&Modify[T]{ctx})
	})
}

// Update flags the variable as new without changing its value.
func (v *Var[T]) Update() bool { return v.v.Update() }

func (v *Var[T]) Capabilities() Capability { return v.v.Capabilities() }

// Hook registers an observer called on every update, on the goroutine
// that committed it. Returning false removes the hook. The hook is removed
// when the returned handle is garbage collected, unless Perm is called.
func (v *Var[T]) Hook(fn func(args HookArgs[T]) bool) *HookHandle {
	return v.v.Hook(func(args *internal.HookArgs) bool {
		return fn(HookArgs[T]{Value: as[T](args.Value), Update: args.Update, Tags: args.Tags})
	})
}

func (v *Var[T]) LastUpdate() UpdateID { return v.v.LastUpdate() }

func (v *Var[T]) ModifyInfo() ModifyInfo { return v.v.ModifyInfo() }

func (v *Var[T]) ModifyImportance() uint64 { return v.v.ModifyImportance() }

func (v *Var[T]) IsAnimating() bool { return v.v.IsAnimating() }

// HookAnimationStop runs fn when the running animation stops. Returns
// false if the variable is not animating.
func (v *Var[T]) HookAnimationStop(fn func()) bool { return v.v.HookAnimationStop(fn) }

// ReadOnly returns a view that rejects writes.
func (v *Var[T]) ReadOnly() *Var[T] {
	return &Var[T]{internal.NewReadOnlyVar(v.v)}
}

// HookArgs is what a hook receives.
type HookArgs[T any] struct {
	Value  T
	Update UpdateID
	Tags   []any
}

// Modify is handed to Modify closures.
type Modify[T any] struct {
	ctx *internal.ModifyCtx
}

func (m *Modify[T]) Value() T { return as[T](m.ctx.Value()) }

// Set replaces the value.
func (m *Modify[T]) Set(value T) { m.ctx.Set(value) }

// Edit mutates a copy of the value in place and stores it back.
func (m *Modify[T]) Edit(fn func(value *T)) {
	value := m.Value()
	fn(&value)
	m.ctx.Set(value)
}

// Update flags the variable as new without replacing the value.
func (m *Modify[T]) Update() { m.ctx.Update() }

// PushTag attaches metadata to the hook notification.
func (m *Modify[T]) PushTag(tag any) { m.ctx.PushTag(tag) }

// Map derives a read-only variable that recomputes whenever v updates.
func Map[T, O any](v *Var[T], fn func(T) O) *Var[O] {
	return &Var[O]{internal.NewMapVar(v.v, reflect.TypeFor[O](), func(value any) any {
		return fn(as[T](value))
	})}
}
