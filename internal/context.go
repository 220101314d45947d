package internal

// ContextID identifies an observation context (an app, a window, a
// widget). Two observation sites with the same ID share per-context
// variable instances.
type ContextID uint64

// RootContext is the context of code running outside any ContextOwner.
const RootContext ContextID = 0

// ContextSource reports the context the caller is observing from.
type ContextSource interface {
	Current() ContextID
}

// ContextSourceFunc adapts a function to ContextSource.
type ContextSourceFunc func() ContextID

func (f ContextSourceFunc) Current() ContextID { return f() }

type goroutineContexts struct{}

func (goroutineContexts) Current() ContextID {
	if r := peekRuntime(); r != nil {
		return r.CurrentContext()
	}

	return RootContext
}

// GoroutineContexts resolves the context from the innermost
// ContextOwner.Run on the calling goroutine.
var GoroutineContexts ContextSource = goroutineContexts{}

// FixedContext always reports ctx.
func FixedContext(ctx ContextID) ContextSource {
	return ContextSourceFunc(func() ContextID { return ctx })
}
