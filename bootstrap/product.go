package bootstrap

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/database"
	"github.com/tenantify/apikit/di"
	"github.com/tenantify/apikit/entity"
)

// Product is the customization surface a concrete API product implements.
// The bootstrap calls these accessors exactly once during construction; the
// returned values are treated as immutable afterwards.
type Product interface {
	// APITitle names the API in its documentation. An empty title is a
	// configuration defect and aborts startup.
	APITitle() string

	// APIVersion is the documented API version, e.g. "v1". An empty version
	// aborts startup.
	APIVersion() string

	// ClockSkew is the leeway granted when validating time-based token
	// claims. Return zero to disable leeway.
	ClockSkew() time.Duration

	// ConfigureDependencies registers the product's own services in the
	// container. It runs after the bootstrap registers its defaults and its
	// error aborts startup. Every product must implement it, even if only to
	// return nil.
	ConfigureDependencies(c di.Container) error
}

// Provider builds the product's database context around the managed
// connection. The returned value is what handlers see through the entity
// service.
type Provider[D entity.Handle] func(ctx context.Context, db *database.DB) (D, error)

// Controller registers a group of routes on the router. Controllers are
// mapped after the middleware pipeline is in place, so every route inherits
// it.
type Controller interface {
	Register(r gin.IRouter)
}
