package internal

import (
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var intType = reflect.TypeFor[int]()

func set(value any) func(*ModifyCtx) {
	return func(m *ModifyCtx) { m.Set(value) }
}

func TestSupersedes(t *testing.T) {
	tests := []struct {
		name string
		next ModifyInfo
		cur  ModifyInfo
		want bool
	}{
		{"greater importance", ModifyInfo{Importance: 2, Round: 1}, ModifyInfo{Importance: 1, Round: 1}, true},
		{"lower importance", ModifyInfo{Importance: 1, Round: 2}, ModifyInfo{Importance: 2, Round: 1}, false},
		{"same importance same round", ModifyInfo{Importance: 3, Round: 5}, ModifyInfo{Importance: 3, Round: 5}, false},
		{"same importance later round", ModifyInfo{Importance: 3, Round: 6}, ModifyInfo{Importance: 3, Round: 5}, true},
		{"first write", ModifyInfo{Importance: 1, Round: 1}, ModifyInfo{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.next.supersedes(tt.cur))
		})
	}
}

func TestValueVar(t *testing.T) {
	t.Run("earlier write wins within a round", func(t *testing.T) {
		v := NewValueVar(0, intType)
		importance := NextImportance()

		GetRuntime().Update(func() {
			v.modifyAs(set(1), ModifyInfo{Importance: importance})
			v.modifyAs(set(2), ModifyInfo{Importance: importance})
		})

		assert.Equal(t, 1, v.Get())
	})

	t.Run("lower importance is rejected", func(t *testing.T) {
		v := NewValueVar(0, intType)
		lo := NextImportance()
		hi := NextImportance()

		v.modifyAs(set(1), ModifyInfo{Importance: hi})
		v.modifyAs(set(2), ModifyInfo{Importance: lo})

		assert.Equal(t, 1, v.Get())
		assert.Equal(t, hi, v.ModifyImportance())
	})

	t.Run("unchanged modify does not stamp", func(t *testing.T) {
		v := NewValueVar(0, intType)
		calls := 0
		h := v.Hook(func(*HookArgs) bool { calls++; return true })
		defer h.Unhook()

		v.Modify(func(*ModifyCtx) {})

		assert.Equal(t, Never, v.LastUpdate())
		assert.Equal(t, 0, calls)
	})

	t.Run("stamps never go back", func(t *testing.T) {
		assert.Equal(t, UpdateID(9), stampAfter(9, 7))
		assert.Greater(t, stampAfter(5, 7), UpdateID(7))
		assert.Greater(t, stampAfter(7, 7), UpdateID(7))
	})

	t.Run("snapshots are cloned", func(t *testing.T) {
		v := NewValueVar(&counter{n: 1}, reflect.TypeFor[*counter]())

		v.Get().(*counter).n = 10

		assert.Equal(t, 1, v.Get().(*counter).n)
	})

	t.Run("type mismatch", func(t *testing.T) {
		v := NewValueVar(0, intType)

		err := recoverErr(func() { v.Set("nope") })

		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Equal(t, 0, v.Get())
	})

	t.Run("rejected write is logged", func(t *testing.T) {
		l, logs := test.NewNullLogger()
		l.SetLevel(logrus.DebugLevel)
		prev := logger()
		SetLogger(l)
		defer SetLogger(prev)

		v := NewValueVar(0, intType)
		lo := NextImportance()
		hi := NextImportance()

		v.modifyAs(set(1), ModifyInfo{Importance: hi})
		v.modifyAs(set(2), ModifyInfo{Importance: lo})

		require.NotNil(t, logs.LastEntry())
		assert.Equal(t, "queued write not applied", logs.LastEntry().Message)
		assert.Equal(t, lo, logs.LastEntry().Data["importance"])
	})

	t.Run("cycle that never settles is dropped", func(t *testing.T) {
		l, logs := test.NewNullLogger()
		prev := logger()
		SetLogger(l)
		Configure(Config{MaxUpdateRounds: 3})
		defer func() {
			SetLogger(prev)
			Configure(DefaultConfig())
		}()

		v := NewValueVar(0, intType)
		h := v.Hook(func(args *HookArgs) bool {
			v.Set(args.Value.(int) + 1)
			return true
		})
		defer h.Unhook()

		v.Set(1)

		assert.Equal(t, 3, v.Get())
		require.NotNil(t, logs.LastEntry())
		assert.Equal(t, "update cycle did not settle, dropping queued writes", logs.LastEntry().Message)
		assert.Equal(t, 1, logs.LastEntry().Data["dropped"])
	})
}

type counter struct {
	n int
}

func (c *counter) Clone() any {
	return &counter{n: c.n}
}

// recoverErr runs fn and returns the error it panicked with.
func recoverErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()

	fn()
	return nil
}
