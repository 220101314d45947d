package sigvar

import (
	"reflect"

	"github.com/AnatoleLucet/sigvar/internal"
)

type ContextID = internal.ContextID

// RootContext is the context of code running outside any Context.
const RootContext = internal.RootContext

// Context is an observation context (an app, a window, a widget).
// Contextual variables resolve to one instance per context.
type Context struct {
	owner *internal.ContextOwner
}

func NewContext() *Context {
	return &Context{internal.NewContextOwner()}
}

func (c *Context) ID() ContextID { return c.owner.ID() }

// Run a function with this context as the current one on the calling
// goroutine.
func (c *Context) Run(fn func() error) error { return c.owner.Run(fn) }

// Dispose releases every per-context instance realized in this context.
func (c *Context) Dispose() { c.owner.Dispose() }

// Add a function to be called ONCE when the context is disposed.
func (c *Context) OnCleanup(fn func()) { c.owner.OnCleanup(fn) }

// Add a function to be called when a panic occurs within Run.
// If no error listener is registered, the panic propagates as usual.
func (c *Context) OnError(fn func(any)) { c.owner.OnError(fn) }

// CurrentContext returns the context the calling goroutine runs in.
func CurrentContext() ContextID {
	return internal.GoroutineContexts.Current()
}

// Contextual declares a variable with one instance per context. init runs
// inside the context the first time the variable is observed from it.
func Contextual[T any](init func() *Var[T]) *Var[T] {
	return &Var[T]{internal.NewContextualVar(reflect.TypeFor[T](), func(internal.ContextID) internal.AnyVar {
		return init().v
	}, internal.GoroutineContexts)}
}

// In returns the instance of v for ctx. Variables that do not depend on
// the context return themselves.
func In[T any](v *Var[T], ctx ContextID) *Var[T] {
	if cb, ok := v.v.(internal.ContextBound); ok {
		return &Var[T]{cb.In(ctx)}
	}

	return v
}
