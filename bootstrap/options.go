package bootstrap

import (
	"time"

	"github.com/tenantify/apikit/di"
	"github.com/tenantify/apikit/logger"
)

// Option configures the App during creation. Options are non-generic so they
// can be shared across products with different database contexts.
type Option func(*appOptions)

type appOptions struct {
	logger           *logger.Logger
	container        di.Container
	gracefulTimeout  *time.Duration
	anonymousPaths   []string
	roleRequirements map[string][]string
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, the logger is initialized
// from the config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithContainer sets a custom dependency container.
func WithContainer(c di.Container) Option {
	return func(o *appOptions) {
		o.container = c
	}
}

// WithAnonymousPaths adds URL path prefixes that bypass authentication, on
// top of the built-in probe and documentation paths.
func WithAnonymousPaths(prefixes ...string) Option {
	return func(o *appOptions) {
		o.anonymousPaths = append(o.anonymousPaths, prefixes...)
	}
}

// WithRoleRequirements configures the authorization stage: requests under
// each path prefix must carry all the listed roles.
func WithRoleRequirements(requirements map[string][]string) Option {
	return func(o *appOptions) {
		o.roleRequirements = requirements
	}
}
