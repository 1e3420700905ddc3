package di

import (
	"context"
	goerrors "errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kbukum/accountkit/errors"
	"github.com/kbukum/accountkit/logger"
	"github.com/kbukum/accountkit/singleton"
)

// RegistrationMode determines how a component should be resolved
type RegistrationMode int

const (
	Eager     RegistrationMode = iota // Initialize immediately on registration
	Lazy                              // Initialize on first resolve
	Singleton                         // Pre-created instance
)

func (m RegistrationMode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// DefaultStrategy guards lazy registrations unless WithStrategy says otherwise.
const DefaultStrategy = singleton.StrategyDoubleChecked

// Container defines the interface for a dependency injection container
type Container interface {
	Register(key string, constructor interface{}) error
	RegisterLazy(key string, constructor interface{}, options ...LazyOption) error
	RegisterEager(key string, constructor interface{}) error
	RegisterSingleton(key string, instance interface{}) error
	Resolve(key string) (interface{}, error)
	MustResolve(key string) interface{}
	Close() error

	// Introspection
	Registrations() []RegistrationInfo
}

// RegistrationInfo describes a registered component for introspection.
type RegistrationInfo struct {
	Key         string
	Mode        RegistrationMode   // Eager, Lazy, or Singleton
	Strategy    singleton.Strategy // empty unless Mode is Lazy
	Initialized bool
}

// UnifiedContainer owns every instance it hands out. Each lazy registration
// is backed by a singleton.Provider, so a key is constructed at most once
// for the life of the container, whatever the number of goroutines
// resolving it.
type UnifiedContainer struct {
	components map[string]*ComponentRegistration
	mutex      sync.RWMutex
}

// ComponentRegistration holds one key's provider.
type ComponentRegistration struct {
	key         string
	mode        RegistrationMode
	strategy    singleton.Strategy
	provider    singleton.Provider[outcome]
	published   atomic.Pointer[outcome]
}

// resolve returns the provider's outcome and records the first one
// observed. Registrations and Close only look at the recorded outcome, so
// they never construct or wait on a construction in progress.
func (r *ComponentRegistration) resolve() outcome {
	out := r.provider.Instance()
	if r.published.Load() == nil {
		r.published.CompareAndSwap(nil, &out)
	}
	return out
}

// outcome carries a constructor's result through a provider, which cannot
// itself fail. A failed construction is published like any other, so the
// registration stays failed.
type outcome struct {
	instance interface{}
	err      error
}

// LazyOption configures a lazy registration.
type LazyOption func(*ComponentRegistration)

// WithStrategy selects the initialization strategy guarding the registration.
func WithStrategy(strategy singleton.Strategy) LazyOption {
	return func(reg *ComponentRegistration) {
		reg.strategy = strategy
	}
}

func NewContainer() Container {
	return &UnifiedContainer{
		components: make(map[string]*ComponentRegistration),
	}
}

// Register registers a component for lazy initialization with DefaultStrategy.
func (c *UnifiedContainer) Register(key string, constructor interface{}) error {
	return c.RegisterLazy(key, constructor)
}

// RegisterLazy registers a component that is constructed on first resolve.
func (c *UnifiedContainer) RegisterLazy(key string, constructor interface{}, options ...LazyOption) error {
	if err := checkConstructor(constructor); err != nil {
		return err
	}
	// Eager and enumerated strategies construct inside singleton.New.
	if c.has(key) {
		return errors.AlreadyExists("component", key)
	}

	registration := &ComponentRegistration{
		key:      key,
		mode:     Lazy,
		strategy: DefaultStrategy,
	}
	for _, opt := range options {
		opt(registration)
	}

	provider, err := singleton.New(registration.strategy, func() outcome {
		instance, err := c.callConstructor(constructor)
		if err != nil {
			logger.Debug("Lazy component initialization failed", logger.Fields(
				logger.FieldComponent, key,
				logger.FieldError, err.Error(),
			))
		} else {
			logger.Debug("Lazy component initialized", logger.Fields(
				logger.FieldComponent, key,
				logger.FieldStrategy, string(registration.strategy),
			))
		}
		return outcome{instance: instance, err: err}
	})
	if err != nil {
		return fmt.Errorf("registering %s: %w", key, err)
	}
	registration.provider = provider
	if !registration.strategy.Lazy() {
		registration.resolve()
	}

	return c.add(registration)
}

// RegisterEager registers a component and constructs it immediately.
func (c *UnifiedContainer) RegisterEager(key string, constructor interface{}) error {
	if err := checkConstructor(constructor); err != nil {
		return err
	}

	instance, err := c.callConstructor(constructor)
	if err != nil {
		return fmt.Errorf("failed to initialize eager component '%s': %w", key, err)
	}
	return c.addValue(key, Eager, instance)
}

// RegisterSingleton registers a pre-created instance
func (c *UnifiedContainer) RegisterSingleton(key string, instance interface{}) error {
	return c.addValue(key, Singleton, instance)
}

func (c *UnifiedContainer) addValue(key string, mode RegistrationMode, instance interface{}) error {
	out := outcome{instance: instance}
	registration := &ComponentRegistration{
		key:      key,
		mode:     mode,
		provider: singleton.NewEager(func() outcome { return out }),
	}
	registration.published.Store(&out)
	return c.add(registration)
}

func (c *UnifiedContainer) has(key string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, exists := c.components[key]
	return exists
}

func (c *UnifiedContainer) add(registration *ComponentRegistration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.components[registration.key]; exists {
		return errors.AlreadyExists("component", registration.key)
	}
	c.components[registration.key] = registration
	return nil
}

// Resolve gets a component instance
func (c *UnifiedContainer) Resolve(key string) (interface{}, error) {
	c.mutex.RLock()
	registration, exists := c.components[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, errors.NotFound("component", key)
	}

	out := registration.resolve()
	if out.err != nil {
		return nil, fmt.Errorf("failed to initialize component '%s': %w", key, out.err)
	}
	return out.instance, nil
}

func (c *UnifiedContainer) MustResolve(key string) interface{} {
	instance, err := c.Resolve(key)
	if err != nil {
		panic(err)
	}
	return instance
}

func checkConstructor(constructor interface{}) error {
	if constructor == nil || reflect.TypeOf(constructor).Kind() != reflect.Func {
		return errors.InvalidInput("constructor", "must be a function")
	}
	return nil
}

func (c *UnifiedContainer) callConstructor(constructor interface{}) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	fnType := fn.Type()

	// Handle different constructor signatures
	switch fnType.NumIn() {
	case 0:
		// Simple constructor: func() (Service, error) or func() Service
		return c.handleConstructorResults(fn.Call(nil))

	case 1:
		// Functional options only: func(...Option) Service
		if fnType.IsVariadic() {
			return c.handleConstructorResults(fn.Call(nil))
		}
		// Context-aware constructor: func(context.Context) (Service, error)
		if fnType.In(0) == reflect.TypeFor[context.Context]() {
			return c.handleConstructorResults(fn.Call([]reflect.Value{reflect.ValueOf(context.Background())}))
		}
		// DI-aware constructor: func(Container) (Service, error)
		if reflect.TypeOf(c).AssignableTo(fnType.In(0)) {
			return c.handleConstructorResults(fn.Call([]reflect.Value{reflect.ValueOf(c)}))
		}
	}
	return nil, errors.InvalidInput("constructor", "unsupported signature "+fnType.String())
}

func (c *UnifiedContainer) handleConstructorResults(results []reflect.Value) (interface{}, error) {
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		instance := results[0].Interface()
		if err, _ := results[1].Interface().(error); err != nil {
			return nil, err
		}
		return instance, nil
	default:
		return nil, errors.InvalidInput("constructor", "must return either (instance) or (instance, error)")
	}
}

// Registrations returns info about all registered components sorted by key.
func (c *UnifiedContainer) Registrations() []RegistrationInfo {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make([]RegistrationInfo, 0, len(c.components))
	for key, reg := range c.components {
		result = append(result, RegistrationInfo{
			Key:         key,
			Mode:        reg.mode,
			Strategy:    reg.strategy,
			Initialized: reg.published.Load() != nil,
		})
	}
	slices.SortFunc(result, func(a, b RegistrationInfo) int {
		return strings.Compare(a.Key, b.Key)
	})
	return result
}

// Close closes every resolved instance that implements Close() error.
// Lazy registrations that were never resolved, or whose first resolve is
// still constructing, are skipped.
func (c *UnifiedContainer) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var errs []error
	for key, registration := range c.components {
		out := registration.published.Load()
		if out == nil {
			continue
		}
		if closer, ok := out.instance.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", key, err))
			}
		}
	}
	return goerrors.Join(errs...)
}
