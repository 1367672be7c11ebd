package di

import (
	"fmt"
	"reflect"

	"github.com/mrsarm/appctx/errors"
)

// typeOf returns the reflect.Type of T, including interface types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Lookup resolves a bean by name with compile-time type safety.
func Lookup[T any](c Container, name string) (T, error) {
	var zero T

	instance, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("bean '%s' is %T, not %s: %w",
			name, instance, typeOf[T](), errors.ErrTypeMismatch)
	}

	return typed, nil
}

// Must resolves a bean by name or panics.
func Must[T any](c Container, name string) T {
	typed, err := Lookup[T](c, name)
	if err != nil {
		panic(err)
	}

	return typed
}

// Inject resolves the unique bean assignable to T.
func Inject[T any](c Container) (T, error) {
	var zero T

	instance, err := c.ResolveType(typeOf[T]())
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("bean is %T, not %s: %w",
			instance, typeOf[T](), errors.ErrTypeMismatch)
	}

	return typed, nil
}

// MustInject resolves the unique bean assignable to T or panics.
func MustInject[T any](c Container) T {
	typed, err := Inject[T](c)
	if err != nil {
		panic(err)
	}

	return typed
}

// RegisterSingleton registers a typed singleton factory. The bean's
// compile-time type is recorded for type-based resolution.
func RegisterSingleton[T any](c Container, name string, factory func(Container) (T, error), opts ...RegisterOption) error {
	wrapped := func(c Container) (any, error) {
		return factory(c)
	}

	opts = append(opts, Singleton(), WithDeclaredType(typeOf[T]()))

	return c.Register(name, wrapped, opts...)
}

// RegisterTransient registers a typed transient factory.
func RegisterTransient[T any](c Container, name string, factory func(Container) (T, error), opts ...RegisterOption) error {
	wrapped := func(c Container) (any, error) {
		return factory(c)
	}

	opts = append(opts, Transient(), WithDeclaredType(typeOf[T]()))

	return c.Register(name, wrapped, opts...)
}

// RegisterValue registers an already-built instance as a singleton.
func RegisterValue[T any](c Container, name string, value T, opts ...RegisterOption) error {
	return RegisterSingleton(c, name, func(Container) (T, error) {
		return value, nil
	}, opts...)
}
