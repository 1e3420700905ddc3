package singleton

import (
	"sync"
	"sync/atomic"
)

// Deferred checks the published pointer without locking and, on a miss,
// delegates to syncInit, which runs entirely under the mutex and checks
// again before constructing.
type Deferred[T any] struct {
	mu       sync.Mutex
	ctor     func() T
	instance atomic.Pointer[T]
}

// NewDeferred returns a Deferred provider.
func NewDeferred[T any](ctor func() T) *Deferred[T] {
	return &Deferred[T]{ctor: ctor}
}

func (p *Deferred[T]) Instance() T {
	if v := p.instance.Load(); v != nil {
		return *v
	}
	return p.syncInit()
}

func (p *Deferred[T]) syncInit() T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v := p.instance.Load(); v == nil {
		v := p.ctor()
		p.instance.Store(&v)
	}
	return *p.instance.Load()
}
