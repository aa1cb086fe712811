package di

import "fmt"

// Resolve resolves a component with type safety, returning an error on
// missing registration or type mismatch.
//
// Example:
//
//	entities, err := di.Resolve[*entity.Service[*database.DB]](c, di.Keys.EntityService)
func Resolve[T any](c Container, key string) (T, error) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: component %s is %T, expected %T", key, instance, zero)
	}
	return result, nil
}

// MustResolve resolves a component with type safety, panicking on error.
// Use in handlers where a missing dependency is a programming error.
func MustResolve[T any](c Container, key string) T {
	result, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return result
}

// TryResolve resolves a component, returning false if it is missing or has a
// different type. Use for optional dependencies.
func TryResolve[T any](c Container, key string) (T, bool) {
	result, err := Resolve[T](c, key)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
