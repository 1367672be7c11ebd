package appctx

import "github.com/mrsarm/appctx/internal/di"

// Container surface, re-exported from internal/di.
type (
	Container      = di.Container
	Factory        = di.Factory
	Service        = di.Service
	ContainerAware = di.ContainerAware
	ServiceInfo    = di.ServiceInfo
	Option         = di.Option
	RegisterOption = di.RegisterOption
)

var (
	NewContainer    = di.NewContainer
	WithEnvironment = di.WithEnvironment
	WithLogger      = di.WithLogger

	Singleton        = di.Singleton
	Transient        = di.Transient
	WithDependencies = di.WithDependencies
	WithDeclaredType = di.WithDeclaredType
	WithMetadata     = di.WithMetadata
)

// RegisterSingleton registers a typed singleton factory in c.
func RegisterSingleton[T any](c Container, name string, factory func(Container) (T, error), opts ...RegisterOption) error {
	return di.RegisterSingleton(c, name, factory, opts...)
}

// RegisterTransient registers a typed transient factory in c.
func RegisterTransient[T any](c Container, name string, factory func(Container) (T, error), opts ...RegisterOption) error {
	return di.RegisterTransient(c, name, factory, opts...)
}

// RegisterValue registers an already-built instance as a singleton in c.
func RegisterValue[T any](c Container, name string, value T, opts ...RegisterOption) error {
	return di.RegisterValue(c, name, value, opts...)
}

// Lookup resolves a bean from c by name with compile-time type safety.
func Lookup[T any](c Container, name string) (T, error) {
	return di.Lookup[T](c, name)
}

// Must resolves a bean from c by name or panics.
func Must[T any](c Container, name string) T {
	return di.Must[T](c, name)
}

// Inject resolves the unique bean in c assignable to T.
func Inject[T any](c Container) (T, error) {
	return di.Inject[T](c)
}

// MustInject resolves the unique bean in c assignable to T or panics.
func MustInject[T any](c Container) T {
	return di.MustInject[T](c)
}
