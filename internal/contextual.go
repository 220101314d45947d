package internal

import (
	"reflect"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ContextualVar resolves to a separate instance per context. Instances
// are built lazily by init the first time a context observes the variable
// and cached until the context is disposed.
type ContextualVar struct {
	typ     reflect.Type
	init    func(ctx ContextID) AnyVar
	context ContextSource

	mu        sync.RWMutex
	instances map[ContextID]AnyVar

	group singleflight.Group
}

func NewContextualVar(typ reflect.Type, init func(ctx ContextID) AnyVar, source ContextSource) *ContextualVar {
	if source == nil {
		source = GoroutineContexts
	}

	return &ContextualVar{
		typ:       typ,
		init:      init,
		context:   source,
		instances: make(map[ContextID]AnyVar),
	}
}

func (c *ContextualVar) sealed() {}

func (c *ContextualVar) Kind() Kind { return KindContextual }

func (c *ContextualVar) ValueType() reflect.Type { return c.typ }

func (c *ContextualVar) Contexts() ContextSource { return c.context }

// In returns the instance for ctx.
func (c *ContextualVar) In(ctx ContextID) AnyVar {
	c.mu.RLock()
	v, ok := c.instances[ctx]
	c.mu.RUnlock()
	if ok {
		return v
	}

	built, _, _ := c.group.Do(strconv.FormatUint(uint64(ctx), 10), func() (any, error) {
		c.mu.RLock()
		v, ok := c.instances[ctx]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		var inst AnyVar
		GetRuntime().RunInContext(ctx, func() {
			inst = c.init(ctx)
		})

		c.mu.Lock()
		c.instances[ctx] = inst
		c.mu.Unlock()

		contextsRealizedTotal.Inc()
		logger().WithField("context", ctx).Debug("contextual variable realized")

		if owner := lookupOwner(ctx); owner != nil {
			owner.OnCleanup(func() { c.forget(ctx) })
		}

		return inst, nil
	})

	v = built.(AnyVar)
	if v.ValueType() != c.typ {
		c.forget(ctx)
		violation(ErrTypeMismatch, "contextual init built a %s variable, expected %s", v.ValueType(), c.typ)
	}

	return v
}

// Realized reports whether ctx already has an instance.
func (c *ContextualVar) Realized(ctx ContextID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.instances[ctx]
	return ok
}

func (c *ContextualVar) forget(ctx ContextID) {
	c.mu.Lock()
	delete(c.instances, ctx)
	c.mu.Unlock()
}

func (c *ContextualVar) current() AnyVar {
	return c.In(c.context.Current())
}

func (c *ContextualVar) Get() any                         { return c.current().Get() }
func (c *ContextualVar) Set(value any) bool               { return c.current().Set(value) }
func (c *ContextualVar) Modify(fn func(*ModifyCtx)) bool  { return c.current().Modify(fn) }
func (c *ContextualVar) Update() bool                     { return c.current().Update() }
func (c *ContextualVar) Hook(fn HookFn) *HookHandle       { return c.current().Hook(fn) }
func (c *ContextualVar) LastUpdate() UpdateID             { return c.current().LastUpdate() }
func (c *ContextualVar) ModifyInfo() ModifyInfo           { return c.current().ModifyInfo() }
func (c *ContextualVar) ModifyImportance() uint64         { return c.current().ModifyImportance() }
func (c *ContextualVar) IsAnimating() bool                { return c.current().IsAnimating() }
func (c *ContextualVar) HookAnimationStop(fn func()) bool { return c.current().HookAnimationStop(fn) }

// Capabilities reports the realized instance of the current context plus
// CapContext. Before realization it does not build anything and claims
// only what every instance could do.
func (c *ContextualVar) Capabilities() Capability {
	ctx := c.context.Current()

	c.mu.RLock()
	v, ok := c.instances[ctx]
	c.mu.RUnlock()

	if !ok {
		return CapContext | CapNew | CapModifyChanges
	}

	return v.Capabilities() | CapContext
}
