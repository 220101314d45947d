package internal

// Runtime is the per-goroutine update state: pending writes, cycle depth
// and the context stack. Different goroutines never share a runtime.
type Runtime struct {
	batcher   *Batcher
	scheduler *Scheduler
	queue     *ModifyQueue
	settled   *SettledQueue
	tracker   *Tracker
}

func NewRuntime() *Runtime {
	return &Runtime{
		batcher:   NewBatcher(),
		scheduler: NewScheduler(),
		queue:     NewModifyQueue(),
		settled:   NewSettledQueue(),
		tracker:   NewTracker(),
	}
}

// Schedule queues a write and flushes it now unless an update cycle is
// open or already flushing on this goroutine.
func (r *Runtime) Schedule(mod *modification) {
	r.queue.Enqueue(mod)

	if !r.batcher.IsBatching() {
		r.Flush()
		r.release()
	}
}

func (r *Runtime) Flush() {
	ran := r.scheduler.Run(r.queue.Pending, r.queue.Commit, func() {
		dropped := r.queue.Drop()
		logger().WithField("dropped", dropped).
			WithField("rounds", r.scheduler.Rounds()).
			Error("update cycle did not settle, dropping queued writes")
	})

	if ran {
		r.settled.Run()
	}
}

// OnSettled runs fn once the current update cycle has fully committed, or
// right away when no cycle is running.
func (r *Runtime) OnSettled(fn func()) {
	if !r.batcher.IsBatching() && !r.scheduler.IsRunning() {
		defer r.release()
		fn()
		return
	}

	r.settled.Enqueue(fn)
}

func (r *Runtime) RunInContext(ctx ContextID, fn func()) {
	defer r.release()
	r.tracker.RunWithContext(ctx, fn)
}

func (r *Runtime) CurrentContext() ContextID {
	return r.tracker.CurrentContext()
}

func (r *Runtime) idle() bool {
	return !r.batcher.IsBatching() &&
		!r.scheduler.IsRunning() &&
		!r.queue.Pending() &&
		r.settled.Len() == 0 &&
		!r.tracker.InContext()
}
