package singleton

import "sync"

// Holder delegates construction to sync.OnceValue. The first Instance call
// runs the constructor; concurrent callers wait for it and every later call
// returns the stored value without locking.
type Holder[T any] struct {
	get func() T
}

// NewHolder returns a Holder provider.
func NewHolder[T any](ctor func() T) *Holder[T] {
	return &Holder[T]{get: sync.OnceValue(ctor)}
}

func (p *Holder[T]) Instance() T {
	return p.get()
}
