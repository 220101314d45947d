package internal

import (
	"reflect"
	"slices"
	"time"
	"weak"
)

// Transition is how a branch animates when it becomes the displayed value.
type Transition struct {
	Duration time.Duration
	Curve    EasingFn
}

// AnimatingWhenBuilder builds a when variable whose output eases toward
// the selected branch instead of jumping to it.
type AnimatingWhenBuilder struct {
	when        *WhenBuilder
	transitions []*Transition
	def         Transition
	lerp        LerpFn
	animator    *Animator
}

func NewAnimatingWhenBuilder(def AnyVar, tr Transition, lerp LerpFn) *AnimatingWhenBuilder {
	return &AnimatingWhenBuilder{
		when: NewWhenBuilder(def),
		def:  tr,
		lerp: lerp,
	}
}

// Push adds a branch. A nil transition uses the default one.
func (b *AnimatingWhenBuilder) Push(cond, value AnyVar, tr *Transition) *AnimatingWhenBuilder {
	b.when.Push(cond, value)
	b.transitions = append(b.transitions, tr)
	return b
}

// WithAnimator sets the animator; DefaultAnimator otherwise.
func (b *AnimatingWhenBuilder) WithAnimator(a *Animator) *AnimatingWhenBuilder {
	b.animator = a
	return b
}

func (b *AnimatingWhenBuilder) WithContexts(source ContextSource) *AnimatingWhenBuilder {
	b.when.WithContexts(source)
	return b
}

func (b *AnimatingWhenBuilder) Build() AnyVar {
	snapshot := &AnimatingWhenBuilder{
		when:        b.when.clone(),
		transitions: slices.Clone(b.transitions),
		def:         b.def,
		lerp:        b.lerp,
		animator:    b.animator,
	}
	if snapshot.animator == nil {
		snapshot.animator = DefaultAnimator()
	}
	if snapshot.lerp == nil {
		snapshot.lerp = NumberLerp
	}

	if snapshot.when.contextual() {
		return NewContextualVar(b.when.def.ValueType(), func(ctx ContextID) AnyVar {
			return snapshot.build(snapshot.when.in(ctx))
		}, b.when.context)
	}

	return snapshot.build(snapshot.when)
}

func (b *AnimatingWhenBuilder) build(when *WhenBuilder) *AnimatingWhenVar {
	var inner AnyVar = when.def
	if len(when.cases) > 0 {
		inner = when.build()
	}

	a := &AnimatingWhenVar{
		inner:       inner,
		output:      NewValueVar(inner.Get(), inner.ValueType()),
		transitions: b.transitions,
		def:         b.def,
		lerp:        b.lerp,
		animator:    b.animator,
	}

	wk := weak.Make(a)
	a.handle = inner.Hook(func(args *HookArgs) bool {
		a := wk.Value()
		if a == nil {
			return false
		}

		a.transition(args.Value)
		return true
	})

	return a
}

// AnimatingWhenVar displays the value of an inner when variable, easing
// between values. The inner variable is only reachable through it.
type AnimatingWhenVar struct {
	inner  AnyVar
	output *ValueVar
	handle *HookHandle

	transitions []*Transition
	def         Transition
	lerp        LerpFn
	animator    *Animator
}

func (a *AnimatingWhenVar) activeTransition() Transition {
	w, ok := a.inner.(*WhenVar)
	if !ok {
		return a.def
	}

	i := w.ActiveIndex()
	if i < len(a.transitions) && a.transitions[i] != nil {
		return *a.transitions[i]
	}

	return a.def
}

// transition eases from the displayed value, which may itself be mid
// transition, to the newly reported one.
func (a *AnimatingWhenVar) transition(to any) {
	tr := a.activeTransition()
	a.animator.Ease(a.output, a.output.Get(), to, tr.Duration, tr.Curve, a.lerp)
}

func (a *AnimatingWhenVar) sealed() {}

func (a *AnimatingWhenVar) Kind() Kind              { return KindAnimatingWhen }
func (a *AnimatingWhenVar) ValueType() reflect.Type { return a.output.ValueType() }

// ActiveIndex returns the selected branch of the inner when variable.
func (a *AnimatingWhenVar) ActiveIndex() int {
	if w, ok := a.inner.(*WhenVar); ok {
		return w.ActiveIndex()
	}

	return 0
}

func (a *AnimatingWhenVar) Get() any                     { return a.output.Get() }
func (a *AnimatingWhenVar) Set(any) bool                 { return deny() }
func (a *AnimatingWhenVar) Modify(func(*ModifyCtx)) bool { return deny() }
func (a *AnimatingWhenVar) Update() bool                 { return deny() }

func (a *AnimatingWhenVar) Capabilities() Capability {
	return a.inner.Capabilities() & CapNew
}

func (a *AnimatingWhenVar) Hook(fn HookFn) *HookHandle       { return a.output.Hook(fn) }
func (a *AnimatingWhenVar) LastUpdate() UpdateID             { return a.output.LastUpdate() }
func (a *AnimatingWhenVar) ModifyInfo() ModifyInfo           { return a.output.ModifyInfo() }
func (a *AnimatingWhenVar) ModifyImportance() uint64         { return a.output.ModifyImportance() }
func (a *AnimatingWhenVar) IsAnimating() bool                { return a.output.IsAnimating() }
func (a *AnimatingWhenVar) HookAnimationStop(fn func()) bool { return a.output.HookAnimationStop(fn) }
