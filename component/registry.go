package component

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tenantify/apikit/logger"
)

const stopTimeout = 10 * time.Second

// Registry manages component lifecycle with deterministic ordering.
// Components are started in registration order and stopped in reverse order,
// so dependencies must be registered before their dependents.
type Registry struct {
	order   []Component
	started map[string]bool
	mu      sync.Mutex
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{started: make(map[string]bool)}
}

// Register adds a component to the registry. Registering the same name twice
// is an error.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	for _, existing := range r.order {
		if existing.Name() == name {
			return fmt.Errorf("component %s already registered", name)
		}
	}
	r.order = append(r.order, c)

	logger.Debug("Component registered", map[string]interface{}{
		logger.FieldComponent: name,
	})
	return nil
}

// StartAll starts all components in registration order. The first failure
// aborts startup.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.order {
		name := c.Name()
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		r.started[name] = true
		logger.Debug("Component started", map[string]interface{}{
			logger.FieldComponent: name,
		})
	}
	return nil
}

// StopAll stops started components in reverse registration order, collecting
// errors rather than aborting so every component gets a shutdown attempt.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		c := r.order[i]
		name := c.Name()
		if !r.started[name] {
			continue
		}

		stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		if err := c.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
		}
		cancel()
		r.started[name] = false
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// HealthAll returns health status for all registered components.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]Health, 0, len(r.order))
	for _, c := range r.order {
		results = append(results, c.Health(ctx))
	}
	return results
}

// Get returns a registered component by name, or nil if not found.
func (r *Registry) Get(name string) Component {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.order {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
