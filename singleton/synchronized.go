package singleton

import "sync"

// Synchronized holds one mutex across the whole check-then-create sequence.
// The lock is taken on every call, even long after initialization.
type Synchronized[T any] struct {
	mu       sync.Mutex
	ctor     func() T
	instance *T
}

// NewSynchronized returns a Synchronized provider.
func NewSynchronized[T any](ctor func() T) *Synchronized[T] {
	return &Synchronized[T]{ctor: ctor}
}

func (p *Synchronized[T]) Instance() T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.instance == nil {
		v := p.ctor()
		p.instance = &v
	}
	return *p.instance
}
