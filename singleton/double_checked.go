package singleton

import (
	"sync"
	"sync/atomic"
)

// DoubleChecked reads the published pointer without locking and takes the
// mutex only while nothing has been published.
//
// The pointer is stored with an atomic store after construction completes,
// so a reader that sees a non-nil pointer also sees the constructed value.
type DoubleChecked[T any] struct {
	mu       sync.Mutex
	ctor     func() T
	instance atomic.Pointer[T]
}

// NewDoubleChecked returns a DoubleChecked provider.
func NewDoubleChecked[T any](ctor func() T) *DoubleChecked[T] {
	return &DoubleChecked[T]{ctor: ctor}
}

func (p *DoubleChecked[T]) Instance() T {
	if v := p.instance.Load(); v != nil {
		return *v
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if v := p.instance.Load(); v != nil {
		return *v
	}
	v := p.ctor()
	p.instance.Store(&v)
	return v
}
