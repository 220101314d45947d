package internal

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"
)

var contextIDs atomic.Uint64

// owners maps live context IDs to their owner
var owners sync.Map // ContextID -> weak.Pointer[ContextOwner]

// ContextOwner is the lifecycle of one context. Per-context variable
// instances realized under it are released on Dispose.
type ContextOwner struct {
	id ContextID

	mu sync.Mutex

	// cleanup functions to be called when the context is disposed
	cleanups []func()

	// panic error handlers
	catchers []func(any)

	disposed bool
}

func NewContextOwner() *ContextOwner {
	o := &ContextOwner{
		id:       ContextID(contextIDs.Add(1)),
		cleanups: make([]func(), 0),
	}
	owners.Store(o.id, weak.Make(o))
	runtime.AddCleanup(o, func(id ContextID) { owners.Delete(id) }, o.id)

	return o
}

func lookupOwner(ctx ContextID) *ContextOwner {
	if p, ok := owners.Load(ctx); ok {
		return p.(weak.Pointer[ContextOwner]).Value()
	}

	return nil
}

func (o *ContextOwner) ID() ContextID {
	return o.id
}

// Run calls fn with this context as the goroutine's current context.
func (o *ContextOwner) Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			o.mu.Lock()
			catchers := append([]func(any){}, o.catchers...)
			o.mu.Unlock()

			if len(catchers) == 0 {
				panic(r)
			}

			for _, catcher := range catchers {
				catcher(r)
			}
		}
	}()

	GetRuntime().RunInContext(o.id, func() {
		err = fn()
	})

	return err
}

// OnCleanup adds fn to run once when the context is disposed. If the
// context is already disposed fn runs now.
func (o *ContextOwner) OnCleanup(fn func()) {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
	o.mu.Unlock()
}

// OnError adds a handler for panics raised inside Run. Without handlers
// the panic propagates.
func (o *ContextOwner) OnError(fn func(any)) {
	o.mu.Lock()
	o.catchers = append(o.catchers, fn)
	o.mu.Unlock()
}

func (o *ContextOwner) Disposed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.disposed
}

func (o *ContextOwner) Dispose() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true
	cleanups := o.cleanups
	o.cleanups = nil
	o.mu.Unlock()

	owners.Delete(o.id)

	for i := 0; i < len(cleanups); i++ {
		cleanups[i]()
	}
}
