package internal

import (
	"math/rand/v2"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func boolVar(v bool) *ValueVar { return NewValueVar(v, boolType) }
func intVar(v int) *ValueVar   { return NewValueVar(v, intType) }

var (
	stringType = reflect.TypeFor[string]()
	floatType  = reflect.TypeFor[float64]()
)

func TestWhenSelection(t *testing.T) {
	t.Run("matches a full rescan", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 5))

		conds := []*ValueVar{boolVar(false), boolVar(true), boolVar(false), boolVar(true)}
		b := NewWhenBuilder(intVar(-1))
		for i, c := range conds {
			b.Push(c, intVar(i))
		}
		w := b.Build().(*WhenVar)

		rescan := func() int {
			for i, c := range conds {
				if c.Get().(bool) {
					return i
				}
			}
			return len(conds)
		}

		var got, want []int
		for range 300 {
			conds[rng.IntN(len(conds))].Set(rng.IntN(2) == 1)

			got = append(got, w.ActiveIndex())
			want = append(want, rescan())
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("active branch mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("selection change stamps past both sides", func(t *testing.T) {
		c := boolVar(false)
		a := intVar(1)
		def := intVar(1)
		w := NewWhenBuilder(def).Push(c, a).Build()

		def.Set(1)
		before := w.LastUpdate()

		c.Set(true)

		assert.Greater(t, w.LastUpdate(), before)
		assert.GreaterOrEqual(t, w.LastUpdate(), c.LastUpdate())
	})

	t.Run("non bool condition", func(t *testing.T) {
		err := recoverErr(func() {
			NewWhenBuilder(intVar(0)).Push(intVar(1), intVar(2))
		})

		assert.ErrorIs(t, err, ErrNotBool)
	})

	t.Run("branch type mismatch", func(t *testing.T) {
		err := recoverErr(func() {
			NewWhenBuilder(intVar(0)).Push(boolVar(true), NewValueVar("x", stringType))
		})

		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("released when dropped", func(t *testing.T) {
		c := boolVar(false)
		a := intVar(1)

		func() {
			w := NewWhenBuilder(intVar(0)).Push(c, a).Build()
			assert.Equal(t, 0, w.Get())
		}()

		assert.Eventually(t, func() bool {
			runtime.GC()
			return c.hooks.Len() == 0 && a.hooks.Len() == 0
		}, time.Second, 10*time.Millisecond)
	})
}

func TestWhenCapabilities(t *testing.T) {
	t.Run("constant inputs", func(t *testing.T) {
		w := NewWhenBuilder(NewConstVar(0, intType)).
			Push(NewConstVar(false, boolType), NewConstVar(1, intType)).
			Build()

		assert.Equal(t, Capability(0), w.Capabilities())
		assert.Equal(t, 0, w.Get())
	})

	t.Run("constant condition fixes modify", func(t *testing.T) {
		w := NewWhenBuilder(intVar(0)).
			Push(NewConstVar(true, boolType), NewConstVar(1, intType)).
			Build()

		assert.False(t, w.Capabilities().Has(CapModify))
		assert.False(t, w.Capabilities().Has(CapModifyChanges))
	})

	t.Run("branches that disagree", func(t *testing.T) {
		c := boolVar(true)
		w := NewWhenBuilder(intVar(0)).
			Push(c, NewReadOnlyVar(intVar(1))).
			Build()

		assert.Equal(t, CapNew|CapModifyChanges, w.Capabilities())

		c.Set(false)

		assert.Equal(t, CapNew|CapModify|CapModifyChanges, w.Capabilities())
	})

	t.Run("zero conditions", func(t *testing.T) {
		def := intVar(0)

		assert.Same(t, def, NewWhenBuilder(def).Build())
	})
}

func TestWhenConcurrentToggles(t *testing.T) {
	conds := []*ValueVar{boolVar(false), boolVar(false), boolVar(false)}
	b := NewWhenBuilder(intVar(-1))
	for i, c := range conds {
		b.Push(c, intVar(i))
	}
	w := b.Build().(*WhenVar)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Go(func() {
			rng := rand.New(rand.NewPCG(uint64(g), 17))
			for range 500 {
				conds[rng.IntN(len(conds))].Set(rng.IntN(2) == 1)
			}
		})
	}
	wg.Wait()

	want := len(conds)
	for i, c := range conds {
		if c.Get().(bool) {
			want = i
			break
		}
	}
	assert.Equal(t, want, w.ActiveIndex())
}
