package internal

type Batcher struct {
	// each nested update increases the depth by 1
	// if depth > 0, writes are queued until the outermost update is complete
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// Update runs fn as one update cycle: writes issued inside are committed
// together when the outermost Update returns.
func (r *Runtime) Update(fn func()) {
	defer r.release()
	r.batcher.Batch(fn, r.Flush)
}
