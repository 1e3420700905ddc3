package singleton

import (
	"bytes"
	"encoding/json"

	"github.com/kbukum/accountkit/errors"
)

// EnumeratedToken is the serialized form of an enumerated registry value.
const EnumeratedToken = "INSTANCE"

// Enumerated is a single-value registry: its value is built when the
// provider is created and it serializes to EnumeratedToken, so decoding a
// token back into the provider leaves the held instance untouched.
type Enumerated[T any] struct {
	instance T
	built    bool
}

// NewEnumerated runs ctor immediately and returns a provider holding the result.
func NewEnumerated[T any](ctor func() T) *Enumerated[T] {
	return &Enumerated[T]{instance: ctor(), built: true}
}

func (p *Enumerated[T]) Instance() T {
	return p.instance
}

// MarshalJSON encodes the provider as its token, never as the value.
func (p *Enumerated[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(EnumeratedToken)
}

// UnmarshalJSON accepts only EnumeratedToken and keeps the existing instance.
func (p *Enumerated[T]) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(bytes.TrimSpace(data), &token); err != nil {
		return errors.InvalidInput("enumerated", "expected a JSON string token").WithCause(err)
	}
	if token != EnumeratedToken {
		return errors.InvalidInput("enumerated", "unknown registry value "+token)
	}
	if !p.built {
		return errors.InvalidInput("enumerated", "decoding target holds no registry value")
	}
	return nil
}
