package internal

// modification is a write waiting for the next commit round.
type modification struct {
	target *ValueVar
	fn     func(*ModifyCtx)
	info   ModifyInfo
}

type ModifyQueue struct {
	mods []*modification
}

func NewModifyQueue() *ModifyQueue {
	return &ModifyQueue{
		mods: make([]*modification, 0),
	}
}

func (q *ModifyQueue) Enqueue(mod *modification) {
	q.mods = append(q.mods, mod)
}

func (q *ModifyQueue) Pending() bool {
	return len(q.mods) > 0
}

func (q *ModifyQueue) Len() int {
	return len(q.mods)
}

// Commit applies every queued write in order. Writes queued by hooks while
// committing wait for the next round.
func (q *ModifyQueue) Commit(round UpdateID) {
	mods := q.mods
	q.mods = make([]*modification, 0, len(mods))

	for _, mod := range mods {
		if !mod.target.commit(mod, round) {
			logger().WithField("round", round).
				WithField("importance", mod.info.Importance).
				Debug("queued write not applied")
		}
	}
}

// Drop discards every queued write and returns how many there were.
func (q *ModifyQueue) Drop() int {
	n := len(q.mods)
	q.mods = q.mods[:0]
	return n
}

type SettledQueue struct {
	callbacks []func()
}

func NewSettledQueue() *SettledQueue {
	return &SettledQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *SettledQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

func (q *SettledQueue) Len() int {
	return len(q.callbacks)
}

func (q *SettledQueue) Run() {
	callbacks := q.callbacks
	q.callbacks = make([]func(), 0)

	for _, cb := range callbacks {
		cb()
	}
}
