package internal

// Tracker holds the goroutine's stack of active contexts.
type Tracker struct {
	contexts []ContextID
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) RunWithContext(ctx ContextID, fn func()) {
	t.contexts = append(t.contexts, ctx)
	defer func() { t.contexts = t.contexts[:len(t.contexts)-1] }()

	fn()
}

// CurrentContext returns the innermost context, or RootContext.
func (t *Tracker) CurrentContext() ContextID {
	if len(t.contexts) == 0 {
		return RootContext
	}

	return t.contexts[len(t.contexts)-1]
}

func (t *Tracker) InContext() bool {
	return len(t.contexts) > 0
}
