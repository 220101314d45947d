package sigvar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate(t *testing.T) {
	t.Run("defers writes until the cycle ends", func(t *testing.T) {
		log := []string{}
		count := NewVar(0)

		h := count.Hook(func(args HookArgs[int]) bool {
			log = append(log, fmt.Sprintf("changed %d", args.Value))
			return true
		})
		defer h.Unhook()

		Update(func() {
			count.Set(10)
			count.Set(20)
			log = append(log, fmt.Sprintf("inside %d", count.Get()))
		})

		assert.Equal(t, 20, count.Get())
		assert.Equal(t, []string{
			"inside 0",
			"changed 10",
			"changed 20",
		}, log)
	})

	t.Run("nested updates", func(t *testing.T) {
		log := []string{}
		count := NewVar(0)

		h := count.Hook(func(args HookArgs[int]) bool {
			log = append(log, fmt.Sprintf("changed %d", args.Value))
			return true
		})
		defer h.Unhook()

		Update(func() {
			count.Set(10)
			Update(func() {
				count.Set(20)
			})
			log = append(log, "updated")
		})

		assert.Equal(t, []string{
			"updated",
			"changed 10",
			"changed 20",
		}, log)
	})

	t.Run("one generation per round", func(t *testing.T) {
		a := NewVar(0)
		b := NewVar(0)

		Update(func() {
			a.Set(1)
			b.Set(1)
		})

		assert.Equal(t, a.LastUpdate(), b.LastUpdate())
	})

	t.Run("settled after chained hooks", func(t *testing.T) {
		log := []string{}
		a := NewVar(0)
		b := NewVar(0)

		ha := a.Hook(func(args HookArgs[int]) bool {
			log = append(log, fmt.Sprintf("A changed %d", args.Value))
			b.Set(args.Value * 2)
			return true
		})
		defer ha.Unhook()

		hb := b.Hook(func(args HookArgs[int]) bool {
			log = append(log, fmt.Sprintf("B changed %d", args.Value))
			OnSettled(func() {
				log = append(log, "settled")
			})
			return true
		})
		defer hb.Unhook()

		a.Set(10)

		assert.Equal(t, []string{
			"A changed 10",
			"B changed 20",
			"settled",
		}, log)
	})

	t.Run("settled runs now outside a cycle", func(t *testing.T) {
		ran := false
		OnSettled(func() { ran = true })

		assert.True(t, ran)
	})

	t.Run("current update advances", func(t *testing.T) {
		count := NewVar(0)
		before := CurrentUpdate()

		count.Set(1)

		assert.Greater(t, CurrentUpdate(), before)
		assert.LessOrEqual(t, count.LastUpdate(), CurrentUpdate())
	})
}
