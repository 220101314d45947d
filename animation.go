package sigvar

import (
	"github.com/benbjohnson/clock"

	"github.com/AnatoleLucet/sigvar/internal"
)

type (
	Animator       = internal.Animator
	AnimatorOption = internal.AnimatorOption
	Animation      = internal.Animation
	EasingFn       = internal.EasingFn
)

// NewAnimator creates an animator reading time from clk; nil means the
// wall clock.
func NewAnimator(clk clock.Clock, opts ...AnimatorOption) *Animator {
	return internal.NewAnimator(clk, opts...)
}

// DefaultAnimator is used by animated variables that were not given one.
func DefaultAnimator() *Animator {
	return internal.DefaultAnimator()
}

var (
	WithFrameInterval = internal.WithFrameInterval
	WithoutDriver     = internal.WithoutDriver
)

// Linear is the identity easing curve.
func Linear(t float64) float64 { return internal.Linear(t) }

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// NumberLerp interpolates numbers; integers round to nearest.
func NumberLerp[T Number](from, to T, factor float64) T {
	return internal.NumberLerp(from, to, factor).(T)
}
