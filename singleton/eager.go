package singleton

// Eager constructs its value when the provider is created.
type Eager[T any] struct {
	instance T
}

// NewEager runs ctor immediately and returns a provider holding the result.
func NewEager[T any](ctor func() T) *Eager[T] {
	return &Eager[T]{instance: ctor()}
}

func (p *Eager[T]) Instance() T {
	return p.instance
}
