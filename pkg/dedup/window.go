// Package dedup suppresses repeated delivery of payloads by packet identifier.
package dedup

// DefaultCapacity is the number of identifiers remembered before the window
// is cleared.
const DefaultCapacity = 100

// Window remembers recently delivered packet identifiers.
//
// When an insert pushes the window past its capacity the whole set is
// cleared, so an identifier seen just before the clear is accepted again.
// Window is not safe for concurrent use.
type Window struct {
	capacity int
	seen     map[uint8]struct{}
}

// NewWindow creates a window holding up to capacity identifiers.
// A capacity below 1 selects DefaultCapacity.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Window{
		capacity: capacity,
		seen:     make(map[uint8]struct{}, capacity+1),
	}
}

// Seen reports whether id was already recorded. If not, it records it.
func (w *Window) Seen(id uint8) bool {
	if _, ok := w.seen[id]; ok {
		return true
	}
	w.seen[id] = struct{}{}
	if len(w.seen) > w.capacity {
		clear(w.seen)
	}
	return false
}

// Len returns the number of identifiers currently remembered.
func (w *Window) Len() int {
	return len(w.seen)
}

// Capacity returns the configured capacity.
func (w *Window) Capacity() int {
	return w.capacity
}
