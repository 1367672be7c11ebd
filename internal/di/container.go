package di

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/mrsarm/appctx/errors"
	"github.com/mrsarm/appctx/internal/env"
	"github.com/mrsarm/appctx/internal/logger"
)

// Container is the runtime registry of managed beans. It creates, caches
// and starts beans, resolves them by name or by declared type, and owns
// the property-resolution environment.
type Container interface {
	// Register adds a bean factory under a unique name.
	Register(name string, factory Factory, opts ...RegisterOption) error

	// Resolve returns the bean registered under name, creating it if
	// needed. Singleton instances are cached.
	Resolve(name string) (any, error)

	// ResolveType returns the unique bean whose declared type is
	// assignable to t. Zero matches fail with a not-found error, more
	// than one with an ambiguity error.
	ResolveType(t reflect.Type) (any, error)

	// Has reports whether a bean is registered under name.
	Has(name string) bool

	// Services returns all registered bean names in registration order.
	Services() []string

	// Environment returns the container's property-resolution environment.
	Environment() *env.Environment

	// Start creates all singletons in dependency order and starts those
	// implementing Service. A failure rolls back already-started beans.
	Start(ctx context.Context) error

	// Stop stops started beans in reverse dependency order.
	Stop(ctx context.Context) error

	// Inspect returns diagnostic information about a registration.
	Inspect(name string) ServiceInfo
}

// Factory creates a bean instance.
type Factory func(c Container) (any, error)

// Service is implemented by beans that take part in the container
// start/stop lifecycle.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ContainerAware is implemented by beans that want the live container
// injected when their instance is created.
type ContainerAware interface {
	SetContainer(c Container)
}

// ServiceInfo contains diagnostic information about a registration.
type ServiceInfo struct {
	Name         string
	Type         string
	Lifecycle    string
	Dependencies []string
	Started      bool
	Metadata     map[string]string
}

// Option configures a container at construction time.
type Option func(*containerImpl)

// WithEnvironment sets the container's environment.
func WithEnvironment(e *env.Environment) Option {
	return func(c *containerImpl) {
		if e != nil {
			c.environment = e
		}
	}
}

// WithLogger sets the container's logger.
func WithLogger(l logger.Logger) Option {
	return func(c *containerImpl) {
		if l != nil {
			c.log = l
		}
	}
}

// NewContainer creates a new container. Without options it carries an
// empty environment and a no-op logger.
func NewContainer(opts ...Option) Container {
	c := &containerImpl{
		id:       uuid.NewString(),
		services: make(map[string]*beanRegistration),
		graph:    newDependencyGraph(),
		log:      logger.NewNoopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.environment == nil {
		c.environment = env.Empty()
	}

	c.log = c.log.With(logger.String("container_id", c.id))

	return c
}

type containerImpl struct {
	id          string
	services    map[string]*beanRegistration
	order       []string
	graph       *dependencyGraph
	environment *env.Environment
	log         logger.Logger
	started     bool
	mu          sync.RWMutex
}

type beanRegistration struct {
	name         string
	factory      Factory
	singleton    bool
	declaredType reflect.Type
	dependencies []string
	metadata     map[string]string
	instance     any
	started      bool
	mu           sync.RWMutex
}

func (c *containerImpl) Register(name string, factory Factory, opts ...RegisterOption) error {
	if name == "" {
		return fmt.Errorf("bean name cannot be empty")
	}
	if factory == nil {
		return errors.ErrInvalidFactory
	}

	merged := mergeOptions(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.services[name]; exists {
		return errors.ErrBeanAlreadyExists(name)
	}

	reg := &beanRegistration{
		name:         name,
		factory:      factory,
		singleton:    merged.lifecycle == lifecycleSingleton,
		declaredType: merged.declaredType,
		dependencies: merged.dependencies,
		metadata:     merged.metadata,
	}

	c.services[name] = reg
	c.order = append(c.order, name)
	c.graph.addNode(name, reg.dependencies)

	c.log.Debug("bean registered",
		logger.String("bean", name),
		logger.String("lifecycle", merged.lifecycle),
	)

	return nil
}

func (c *containerImpl) Resolve(name string) (any, error) {
	c.mu.RLock()
	reg, exists := c.services[name]
	c.mu.RUnlock()

	if !exists {
		return nil, errors.ErrBeanNotFound(name)
	}

	if !reg.singleton {
		// Transient: a fresh instance on every resolve.
		instance, err := reg.factory(c)
		if err != nil {
			return nil, errors.NewBeanError(name, "resolve", err)
		}

		c.injectAware(instance)

		return instance, nil
	}

	// Fast path: already created.
	reg.mu.RLock()
	if reg.instance != nil {
		instance := reg.instance
		reg.mu.RUnlock()

		return instance, nil
	}
	reg.mu.RUnlock()

	// Slow path: create under the registration lock. The factory may call
	// back into c.Resolve, which uses the container lock, so no deadlock.
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.instance != nil {
		return reg.instance, nil
	}

	instance, err := reg.factory(c)
	if err != nil {
		return nil, errors.NewBeanError(name, "resolve", err)
	}

	c.injectAware(instance)
	reg.instance = instance

	c.log.Debug("bean created", logger.String("bean", name))

	return instance, nil
}

func (c *containerImpl) ResolveType(t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("bean type cannot be nil")
	}

	c.mu.RLock()
	var matches []string
	for _, name := range c.order {
		reg := c.services[name]
		if reg.declaredType == nil {
			continue
		}
		if reg.declaredType.AssignableTo(t) {
			matches = append(matches, name)
		}
	}
	c.mu.RUnlock()

	switch len(matches) {
	case 0:
		return nil, errors.ErrNoBeanOfType(t.String())
	case 1:
		return c.Resolve(matches[0])
	default:
		return nil, errors.ErrBeanAmbiguous(t.String(), matches)
	}
}

func (c *containerImpl) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.services[name]

	return exists
}

func (c *containerImpl) Services() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.order))
	copy(names, c.order)

	return names
}

func (c *containerImpl) Environment() *env.Environment {
	return c.environment
}

func (c *containerImpl) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return errors.ErrContainerStarted
	}

	order, err := c.graph.topologicalSort()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	// Start beans in order without holding the container lock.
	for i, name := range order {
		if err := c.startBean(ctx, name); err != nil {
			c.stopBeans(ctx, order[:i+1])
			return errors.NewBeanError(name, "start", err)
		}
	}

	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	c.log.Info("container started", logger.Int("beans", len(order)))

	return nil
}

func (c *containerImpl) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}

	order, err := c.graph.topologicalSort()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		if err := c.stopBean(ctx, name); err != nil {
			return errors.NewBeanError(name, "stop", err)
		}
	}

	c.mu.Lock()
	c.started = false
	c.mu.Unlock()

	c.log.Info("container stopped")

	return nil
}

func (c *containerImpl) Inspect(name string) ServiceInfo {
	c.mu.RLock()
	reg, exists := c.services[name]
	c.mu.RUnlock()

	if !exists {
		return ServiceInfo{Name: name}
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	lifecycle := lifecycleTransient
	if reg.singleton {
		lifecycle = lifecycleSingleton
	}

	typeName := "unknown"
	if reg.instance != nil {
		typeName = fmt.Sprintf("%T", reg.instance)
	} else if reg.declaredType != nil {
		typeName = reg.declaredType.String()
	}

	return ServiceInfo{
		Name:         name,
		Type:         typeName,
		Lifecycle:    lifecycle,
		Dependencies: reg.dependencies,
		Started:      reg.started,
		Metadata:     reg.metadata,
	}
}

// injectAware hands the live container to beans that ask for it.
func (c *containerImpl) injectAware(instance any) {
	if aware, ok := instance.(ContainerAware); ok {
		aware.SetContainer(c)
	}
}

func (c *containerImpl) startBean(ctx context.Context, name string) error {
	c.mu.RLock()
	reg := c.services[name]
	c.mu.RUnlock()

	if !reg.singleton {
		return nil
	}

	instance, err := c.Resolve(name)
	if err != nil {
		return err
	}

	if svc, ok := instance.(Service); ok {
		if err := svc.Start(ctx); err != nil {
			return err
		}

		reg.mu.Lock()
		reg.started = true
		reg.mu.Unlock()

		c.log.Debug("bean started", logger.String("bean", name))
	}

	return nil
}

func (c *containerImpl) stopBean(ctx context.Context, name string) error {
	c.mu.RLock()
	reg := c.services[name]
	c.mu.RUnlock()

	reg.mu.RLock()
	instance := reg.instance
	started := reg.started
	reg.mu.RUnlock()

	if !started || instance == nil {
		return nil
	}

	if svc, ok := instance.(Service); ok {
		if err := svc.Stop(ctx); err != nil {
			return err
		}

		reg.mu.Lock()
		reg.started = false
		reg.mu.Unlock()

		c.log.Debug("bean stopped", logger.String("bean", name))
	}

	return nil
}

// stopBeans stops beans in reverse order, used for start rollback.
func (c *containerImpl) stopBeans(ctx context.Context, names []string) {
	for i := len(names) - 1; i >= 0; i-- {
		_ = c.stopBean(ctx, names[i])
	}
}
