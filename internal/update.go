package internal

import "sync/atomic"

// UpdateID is a generation stamp. Stamps are totally ordered and never
// reused; Never marks a variable that has not updated since creation.
type UpdateID uint64

const Never UpdateID = 0

// incremented once per commit round, process-wide
var updates atomic.Uint64

// CurrentUpdate returns the most recently issued generation.
func CurrentUpdate() UpdateID {
	return UpdateID(updates.Load())
}

// NextUpdate issues a new generation.
func NextUpdate() UpdateID {
	return UpdateID(updates.Add(1))
}

// stampAfter returns id if it is newer than floor, otherwise a fresh
// generation. Keeps per-variable stamps strictly increasing when
// commits from different goroutines land out of order.
func stampAfter(id, floor UpdateID) UpdateID {
	if id > floor {
		return id
	}

	return NextUpdate()
}

func maxUpdate(a, b UpdateID) UpdateID {
	if a > b {
		return a
	}

	return b
}
