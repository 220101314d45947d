package sigvar

import "github.com/AnatoleLucet/sigvar/internal"

// Update runs fn as one update cycle: writes issued inside are committed
// together, and their hooks run, when the outermost Update returns.
func Update(fn func()) {
	internal.GetRuntime().Update(fn)
}

// OnSettled runs fn after the current update cycle has fully committed,
// or right away outside of one.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}

// CurrentUpdate returns the latest generation stamp issued.
func CurrentUpdate() UpdateID {
	return internal.CurrentUpdate()
}
