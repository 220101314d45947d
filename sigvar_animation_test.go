package sigvar

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestAnimatedWhen(t *testing.T) {
	setup := func() (*clock.Mock, *Animator, *Var[bool], *Var[bool], *Var[int]) {
		mock := clock.NewMock()
		anim := NewAnimator(mock, WithoutDriver())

		c0 := NewVar(true)
		c1 := NewVar(false)
		w := NewAnimatedWhen(NewVar(0), Transition{Duration: 100 * time.Millisecond}, nil).
			Case(c0, NewVar(10), Transition{Duration: 0}).
			Case(c1, NewVar(20), Transition{Duration: 200 * time.Millisecond}).
			Animator(anim).
			Build()

		return mock, anim, c0, c1, w
	}

	t.Run("eases to the new selection", func(t *testing.T) {
		mock, anim, c0, c1, w := setup()
		assert.Equal(t, 10, w.Get())
		assert.False(t, w.IsAnimating())

		c1.Set(true)
		c0.Set(false)

		assert.True(t, w.IsAnimating())
		assert.Equal(t, 10, w.Get())

		mock.Add(100 * time.Millisecond)
		anim.Frame()

		assert.Greater(t, w.Get(), 10)
		assert.Less(t, w.Get(), 20)
		assert.True(t, w.IsAnimating())

		mock.Add(100 * time.Millisecond)
		anim.Frame()

		assert.Equal(t, 20, w.Get())
		assert.False(t, w.IsAnimating())
		assert.Equal(t, 0, anim.Running())
	})

	t.Run("supersedes from the displayed value", func(t *testing.T) {
		mock, anim, c0, c1, w := setup()

		c1.Set(true)
		c0.Set(false)

		mock.Add(100 * time.Millisecond)
		anim.Frame()
		assert.Equal(t, 15, w.Get())

		c1.Set(false)
		assert.Equal(t, 1, anim.Running())

		mock.Add(50 * time.Millisecond)
		anim.Frame()
		assert.Equal(t, 8, w.Get())

		mock.Add(50 * time.Millisecond)
		anim.Frame()
		assert.Equal(t, 0, w.Get())
		assert.False(t, w.IsAnimating())
	})

	t.Run("zero duration jumps", func(t *testing.T) {
		_, _, c0, c1, w := setup()

		c1.Set(true)
		c0.Set(false)
		c0.Set(true)

		assert.Equal(t, 10, w.Get())
		assert.False(t, w.IsAnimating())
	})

	t.Run("animation stop hooks", func(t *testing.T) {
		mock, anim, c0, c1, w := setup()

		assert.False(t, w.HookAnimationStop(func() {}))

		c1.Set(true)
		c0.Set(false)

		stopped := 0
		assert.True(t, w.HookAnimationStop(func() { stopped++ }))

		mock.Add(200 * time.Millisecond)
		anim.Frame()

		assert.Equal(t, 1, stopped)
	})

	t.Run("hooks see every frame", func(t *testing.T) {
		mock, anim, c0, c1, w := setup()

		frames := []int{}
		h := w.Hook(func(args HookArgs[int]) bool {
			frames = append(frames, args.Value)
			return true
		})
		defer h.Unhook()

		c1.Set(true)
		c0.Set(false)
		for range 4 {
			mock.Add(50 * time.Millisecond)
			anim.Frame()
		}

		assert.Equal(t, []int{10, 13, 15, 18, 20}, frames)
	})

	t.Run("read only", func(t *testing.T) {
		_, _, _, _, w := setup()

		assert.False(t, w.Set(99))
		assert.False(t, w.Capabilities().Has(CapModify))
		assert.True(t, w.Capabilities().Has(CapNew))
		assert.Equal(t, 10, w.Get())
	})

	t.Run("custom lerp", func(t *testing.T) {
		mock := clock.NewMock()
		anim := NewAnimator(mock, WithoutDriver())

		on := NewVar(false)
		lerp := func(from, to string, factor float64) string {
			if factor < 0.5 {
				return from
			}
			return to
		}
		w := NewAnimatedWhen(NewConst("off"), Transition{Duration: time.Second}, lerp).
			Case(on, NewConst("on")).
			Animator(anim).
			Build()

		on.Set(true)
		assert.Equal(t, "off", w.Get())

		mock.Add(600 * time.Millisecond)
		anim.Frame()
		assert.Equal(t, "on", w.Get())
		assert.True(t, w.IsAnimating())
	})

	t.Run("background driver", func(t *testing.T) {
		mock := clock.NewMock()
		anim := NewAnimator(mock, WithFrameInterval(10*time.Millisecond))

		on := NewVar(false)
		w := NewAnimatedWhen(NewConst(0.0), Transition{Duration: 100 * time.Millisecond}, nil).
			Case(on, NewConst(1.0)).
			Animator(anim).
			Build()

		on.Set(true)

		assert.Eventually(t, func() bool {
			mock.Add(10 * time.Millisecond)
			return w.Get() == 1.0 && anim.Running() == 0
		}, time.Second, time.Millisecond)
	})
}

func TestNumberLerp(t *testing.T) {
	assert.Equal(t, 15, NumberLerp(10, 20, 0.5))
	assert.Equal(t, uint8(128), NumberLerp[uint8](0, 255, 0.5))
	assert.Equal(t, -8, NumberLerp(0, -15, 0.5))
	assert.InDelta(t, 0.25, NumberLerp(0.0, 1.0, 0.25), 1e-9)
}
