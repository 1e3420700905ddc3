package di

import (
	"fmt"

	"github.com/kbukum/accountkit/errors"
)

// MustResolve resolves a component with type safety, panics on error.
//
// Example:
//
//	acc := di.MustResolve[*account.Account](c, di.Names.Account)
func MustResolve[T any](c Container, key string) T {
	result, err := Resolve[T](c, key)
	if err != nil {
		panic(err.Error())
	}
	return result
}

// Resolve resolves a component with type safety, returns error on failure.
//
// Example:
//
//	acc, err := di.Resolve[*account.Account](c, di.Names.Account)
//	if err != nil {
//	    return fmt.Errorf("failed to get account: %w", err)
//	}
func Resolve[T any](c Container, key string) (T, error) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, fmt.Errorf("di: failed to resolve %s: %w", key, err)
	}
	result, ok := instance.(T)
	if !ok {
		return zero, errors.TypeMismatch(key, instance, zero)
	}
	return result, nil
}

// TryResolve resolves a component, returns zero value and false if it is
// missing, failed to construct, or has another type.
//
// Example:
//
//	if metrics, ok := di.TryResolve[*observability.Metrics](c, di.Names.Metrics); ok {
//	    metrics.RecordAccess(ctx, "holder")
//	}
func TryResolve[T any](c Container, key string) (T, bool) {
	result, err := Resolve[T](c, key)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
