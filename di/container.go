package di

import (
	"fmt"
	"sync"
)

// Container is the service registry interface exposed to products through
// ConfigureDependencies.
type Container interface {
	// RegisterSingleton stores a pre-built instance under key. Registering the
	// same key twice is an error so startup wiring stays idempotent.
	RegisterSingleton(key string, instance any) error

	// RegisterLazy stores a constructor invoked on first Resolve. The result
	// is cached for the process lifetime.
	RegisterLazy(key string, ctor func() (any, error)) error

	// Resolve returns the instance registered under key.
	Resolve(key string) (any, error)

	// Keys returns all registered keys.
	Keys() []string

	// Close calls Close() on every resolved instance that supports it.
	Close() error
}

type lazyEntry struct {
	ctor     func() (any, error)
	instance any
	built    bool
	mu       sync.Mutex
}

type container struct {
	singletons map[string]any
	lazy       map[string]*lazyEntry
	mu         sync.RWMutex
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		singletons: make(map[string]any),
		lazy:       make(map[string]*lazyEntry),
	}
}

func (c *container) RegisterSingleton(key string, instance any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.singletons[key]; exists {
		return fmt.Errorf("di: %s already registered", key)
	}
	if _, exists := c.lazy[key]; exists {
		return fmt.Errorf("di: %s already registered", key)
	}
	c.singletons[key] = instance
	return nil
}

func (c *container) RegisterLazy(key string, ctor func() (any, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.singletons[key]; exists {
		return fmt.Errorf("di: %s already registered", key)
	}
	if _, exists := c.lazy[key]; exists {
		return fmt.Errorf("di: %s already registered", key)
	}
	c.lazy[key] = &lazyEntry{ctor: ctor}
	return nil
}

func (c *container) Resolve(key string) (any, error) {
	c.mu.RLock()
	if instance, ok := c.singletons[key]; ok {
		c.mu.RUnlock()
		return instance, nil
	}
	entry, ok := c.lazy[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("di: %s not registered", key)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.built {
		return entry.instance, nil
	}
	instance, err := entry.ctor()
	if err != nil {
		return nil, fmt.Errorf("di: construct %s: %w", key, err)
	}
	entry.instance = instance
	entry.built = true
	return instance, nil
}

func (c *container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.singletons)+len(c.lazy))
	for k := range c.singletons {
		keys = append(keys, k)
	}
	for k := range c.lazy {
		keys = append(keys, k)
	}
	return keys
}

func (c *container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	closeIt := func(instance any) {
		if closer, ok := instance.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	for _, instance := range c.singletons {
		closeIt(instance)
	}
	for _, entry := range c.lazy {
		entry.mu.Lock()
		if entry.built {
			closeIt(entry.instance)
		}
		entry.mu.Unlock()
	}
	return firstErr
}
