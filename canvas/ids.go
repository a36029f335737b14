package canvas

import "sync/atomic"

// ID identifies a shape. Zero is never issued.
type ID uint64

// Allocator mints strictly increasing shape ids. One allocator is meant to be
// shared by every canvas in the process so ids never collide.
type Allocator struct {
	last atomic.Uint64
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a fresh id greater than every id issued before.
func (a *Allocator) Next() ID {
	return ID(a.last.Add(1))
}

// Last returns the most recently issued id, or 0 if none was issued.
func (a *Allocator) Last() ID {
	return ID(a.last.Load())
}

// Reset restarts the sequence. Only tests should need this.
func (a *Allocator) Reset() {
	a.last.Store(0)
}

var defaultAllocator = NewAllocator()
