package di

import "reflect"

// RegisterOption configures a bean registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	lifecycle    string
	dependencies []string
	declaredType reflect.Type
	metadata     map[string]string
}

func mergeOptions(opts []RegisterOption) registerOptions {
	merged := registerOptions{lifecycle: lifecycleSingleton}
	for _, opt := range opts {
		opt(&merged)
	}

	return merged
}

const (
	lifecycleSingleton = "singleton"
	lifecycleTransient = "transient"
)

// Singleton makes the bean a singleton (the default): created once,
// lazily, and cached for the container lifetime.
func Singleton() RegisterOption {
	return func(o *registerOptions) {
		o.lifecycle = lifecycleSingleton
	}
}

// Transient makes the bean created anew on each resolve.
func Transient() RegisterOption {
	return func(o *registerOptions) {
		o.lifecycle = lifecycleTransient
	}
}

// WithDependencies declares the names of beans this bean depends on,
// fixing the container start order.
func WithDependencies(deps ...string) RegisterOption {
	return func(o *registerOptions) {
		o.dependencies = append(o.dependencies, deps...)
	}
}

// WithDeclaredType records the bean's compile-time type so it takes part
// in type-based resolution. The generic registration helpers set this
// automatically.
func WithDeclaredType(t reflect.Type) RegisterOption {
	return func(o *registerOptions) {
		o.declaredType = t
	}
}

// WithMetadata attaches a diagnostic metadata entry to the registration.
func WithMetadata(key, value string) RegisterOption {
	return func(o *registerOptions) {
		if o.metadata == nil {
			o.metadata = make(map[string]string)
		}
		o.metadata[key] = value
	}
}
