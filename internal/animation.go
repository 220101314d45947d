package internal

import (
	"reflect"
	"sync"
	"time"
	"weak"

	"github.com/benbjohnson/clock"
)

// EasingFn maps linear progress in [0, 1] to eased progress.
type EasingFn func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// LerpFn interpolates between two values of the same type.
type LerpFn func(from, to any, factor float64) any

// NumberLerp interpolates integer and float values of any kind. Integers
// are rounded to the nearest value.
func NumberLerp(from, to any, factor float64) any {
	a, b := reflect.ValueOf(from), reflect.ValueOf(to)
	out := reflect.New(a.Type()).Elem()

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, y := float64(a.Int()), float64(b.Int())
		out.SetInt(int64(roundHalfAway(x + (y-x)*factor)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		x, y := float64(a.Uint()), float64(b.Uint())
		out.SetUint(uint64(roundHalfAway(x + (y-x)*factor)))
	case reflect.Float32, reflect.Float64:
		x, y := a.Float(), b.Float()
		out.SetFloat(x + (y-x)*factor)
	default:
		violation(ErrTypeMismatch, "cannot interpolate %s", a.Type())
	}

	return out.Interface()
}

func roundHalfAway(f float64) float64 {
	if f < 0 {
		return float64(int64(f - 0.5))
	}
	return float64(int64(f + 0.5))
}

// Animation is a running transition of one variable. It is superseded by
// any later write to that variable with a greater importance.
type Animation struct {
	importance uint64
	start      time.Time
	duration   time.Duration
	from, to   any
	curve      EasingFn
	lerp       LerpFn

	mu      sync.Mutex
	stopped bool
	onStop  []func()
}

func (a *Animation) Importance() uint64 {
	return a.importance
}

func (a *Animation) Duration() time.Duration {
	return a.duration
}

func (a *Animation) Stopped() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.stopped
}

// OnStop adds fn to run when the animation stops. Returns false if it has
// already stopped.
func (a *Animation) OnStop(fn func()) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return false
	}
	a.onStop = append(a.onStop, fn)
	return true
}

// Stop ends the animation; the displayed value stays where it is.
func (a *Animation) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	callbacks := a.onStop
	a.onStop = nil
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// progress returns the eased factor at now and whether the animation is
// complete.
func (a *Animation) progress(now time.Time) (float64, bool) {
	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		return 1, true
	}
	if elapsed <= 0 {
		return a.curve(0), false
	}

	return a.curve(float64(elapsed) / float64(a.duration)), false
}

func (a *Animation) valueAt(factor float64, done bool) any {
	if done {
		return a.to
	}

	return a.lerp(a.from, a.to, factor)
}

type AnimatorOption func(*Animator)

// WithFrameInterval sets the tick of the background driver.
func WithFrameInterval(d time.Duration) AnimatorOption {
	return func(a *Animator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithoutDriver disables the background driver; frames only advance when
// Frame is called.
func WithoutDriver() AnimatorOption {
	return func(a *Animator) {
		a.driver = false
	}
}

// Animator runs value transitions, at most one per target variable.
type Animator struct {
	clock    clock.Clock
	interval time.Duration
	driver   bool

	// serializes frames
	frameMu sync.Mutex

	mu      sync.Mutex
	running map[weak.Pointer[ValueVar]]*Animation
	driving bool
}

func NewAnimator(clk clock.Clock, opts ...AnimatorOption) *Animator {
	if clk == nil {
		clk = clock.New()
	}

	a := &Animator{
		clock:    clk,
		interval: currentConfig().FrameInterval,
		driver:   true,
		running:  make(map[weak.Pointer[ValueVar]]*Animation),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

var (
	defaultAnimator     *Animator
	defaultAnimatorOnce sync.Once
)

// DefaultAnimator is the process-wide animator on the wall clock.
func DefaultAnimator() *Animator {
	defaultAnimatorOnce.Do(func() {
		defaultAnimator = NewAnimator(clock.New())
	})

	return defaultAnimator
}

func (a *Animator) Clock() clock.Clock {
	return a.clock
}

// Running returns the number of animations in flight.
func (a *Animator) Running() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.running)
}

// Ease transitions target from from to to over duration, replacing any
// animation already running on target. A non-positive duration writes to
// right away.
func (a *Animator) Ease(target *ValueVar, from, to any, duration time.Duration, curve EasingFn, lerp LerpFn) *Animation {
	if curve == nil {
		curve = Linear
	}
	if lerp == nil {
		lerp = NumberLerp
	}

	anim := &Animation{
		importance: NextImportance(),
		start:      a.clock.Now(),
		duration:   duration,
		from:       from,
		to:         to,
		curve:      curve,
		lerp:       lerp,
	}

	key := weak.Make(target)

	a.mu.Lock()
	prev := a.running[key]
	if duration > 0 {
		a.running[key] = anim
	} else {
		delete(a.running, key)
	}
	startDriver := duration > 0 && a.driver && !a.driving
	if startDriver {
		a.driving = true
	}
	a.mu.Unlock()

	if prev != nil && !prev.Stopped() {
		animationsSuperseded.Inc()
		logger().WithField("duration", prev.duration).Debug("animation superseded")
		prev.Stop()
	}

	if duration <= 0 {
		anim.Stop()
		target.modifyAs(func(m *ModifyCtx) { m.Set(to) }, ModifyInfo{Importance: anim.importance})
		animationsFinished.Inc()
		return anim
	}

	animationsStarted.Inc()
	start := anim.valueAt(anim.progress(anim.start))
	target.modifyAs(func(m *ModifyCtx) { m.Set(start) }, ModifyInfo{Importance: anim.importance, Animation: anim})

	if startDriver {
		go a.drive()
	}

	return anim
}

// Frame advances every running animation to the clock's current time,
// committing all frame values in one update cycle.
func (a *Animator) Frame() {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()

	now := a.clock.Now()

	a.mu.Lock()
	snapshot := make(map[weak.Pointer[ValueVar]]*Animation, len(a.running))
	for k, v := range a.running {
		snapshot[k] = v
	}
	a.mu.Unlock()

	var ended []weak.Pointer[ValueVar]
	var finished []*Animation

	GetRuntime().Update(func() {
		for key, anim := range snapshot {
			if anim.Stopped() {
				ended = append(ended, key)
				continue
			}

			target := key.Value()
			if target == nil {
				animationsAbandoned.Inc()
				logger().Debug("animation target dropped, abandoning")
				anim.Stop()
				ended = append(ended, key)
				continue
			}

			if target.ModifyImportance() > anim.importance {
				animationsSuperseded.Inc()
				anim.Stop()
				ended = append(ended, key)
				continue
			}

			factor, done := anim.progress(now)
			value := anim.valueAt(factor, done)
			target.modifyAs(func(m *ModifyCtx) { m.Set(value) }, ModifyInfo{Importance: anim.importance, Animation: anim})

			if done {
				finished = append(finished, anim)
				ended = append(ended, key)
			}
		}
	})

	a.mu.Lock()
	for _, key := range ended {
		if a.running[key] == snapshot[key] {
			delete(a.running, key)
		}
	}
	a.mu.Unlock()

	for _, anim := range finished {
		animationsFinished.Inc()
		anim.Stop()
	}
}

func (a *Animator) drive() {
	ticker := a.clock.Ticker(a.interval)
	defer ticker.Stop()

	for range ticker.C {
		a.Frame()

		a.mu.Lock()
		if len(a.running) == 0 {
			a.driving = false
			a.mu.Unlock()
			return
		}
		a.mu.Unlock()
	}
}
