package sigvar

import (
	"github.com/AnatoleLucet/sigvar/internal"
)

// WhenBuilder declares a variable that follows the first true condition's
// value, or the default when no condition is true.
type WhenBuilder[T any] struct {
	b *internal.WhenBuilder
}

// NewWhen starts a when variable with the given default.
func NewWhen[T any](def *Var[T]) *WhenBuilder[T] {
	return &WhenBuilder[T]{internal.NewWhenBuilder(def.v)}
}

// Case adds a branch. Branches added first have priority.
func (w *WhenBuilder[T]) Case(cond *Var[bool], value *Var[T]) *WhenBuilder[T] {
	w.b.Push(cond.v, value.v)
	return w
}

// Build finalizes the variable. Writes to it go to the selected branch.
// The builder can be built again, each build is independent.
func (w *WhenBuilder[T]) Build() *Var[T] {
	return &Var[T]{w.b.Build()}
}

// Transition is how a branch animates when it becomes the displayed value.
type Transition = internal.Transition

// AnimatedWhenBuilder declares a when variable that eases between the
// values of its branches.
type AnimatedWhenBuilder[T any] struct {
	b *internal.AnimatingWhenBuilder
}

// NewAnimatedWhen starts an animated when variable. tr is used by the
// default branch and by any branch without its own transition. A nil
// lerp interpolates numbers.
func NewAnimatedWhen[T any](def *Var[T], tr Transition, lerp func(from, to T, factor float64) T) *AnimatedWhenBuilder[T] {
	var erased internal.LerpFn
	if lerp != nil {
		erased = func(from, to any, factor float64) any {
			return lerp(as[T](from), as[T](to), factor)
		}
	}

	return &AnimatedWhenBuilder[T]{internal.NewAnimatingWhenBuilder(def.v, tr, erased)}
}

// Case adds a branch, optionally with its own transition.
func (w *AnimatedWhenBuilder[T]) Case(cond *Var[bool], value *Var[T], tr ...Transition) *AnimatedWhenBuilder[T] {
	var own *Transition
	if len(tr) > 0 {
		own = &tr[0]
	}

	w.b.Push(cond.v, value.v, own)
	return w
}

// Animator sets the animator driving the transitions.
func (w *AnimatedWhenBuilder[T]) Animator(a *Animator) *AnimatedWhenBuilder[T] {
	w.b.WithAnimator(a)
	return w
}

// Build finalizes the variable. It is read-only.
func (w *AnimatedWhenBuilder[T]) Build() *Var[T] {
	return &Var[T]{w.b.Build()}
}
