package singleton

// Unsynchronized constructs on first access with no mutual exclusion.
//
// Two goroutines that both observe the empty slot each construct a value
// and each publish it; callers may end up holding different instances.
// Use it only to demonstrate the hazard.
type Unsynchronized[T any] struct {
	ctor     func() T
	instance *T
}

// NewUnsynchronized returns an Unsynchronized provider.
func NewUnsynchronized[T any](ctor func() T) *Unsynchronized[T] {
	return &Unsynchronized[T]{ctor: ctor}
}

// Instance returns the published value, constructing one if the slot is empty.
// Not safe for concurrent use.
func (p *Unsynchronized[T]) Instance() T {
	if p.instance == nil {
		v := p.ctor()
		p.instance = &v
	}
	return *p.instance
}
