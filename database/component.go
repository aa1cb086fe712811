package database

import (
	"context"
	"fmt"

	"github.com/tenantify/apikit/component"
	"github.com/tenantify/apikit/logger"
)

// Component wraps an already-constructed DB so the bootstrap registry manages
// its shutdown and health. The DB itself is created at construction time,
// before the lifecycle phases run.
type Component struct {
	db  *DB
	log *logger.Logger
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a lifecycle component for the given database context.
func NewComponent(db *DB, log *logger.Logger) *Component {
	return &Component{db: db, log: log.WithComponent("database")}
}

// Name returns the component name.
func (c *Component) Name() string { return "database" }

// Start verifies the connection that was established at construction.
func (c *Component) Start(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database component: no database context")
	}
	return c.db.Ping(ctx)
}

// Stop closes the connection pool.
func (c *Component) Stop(context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Health pings the database.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.db == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not initialized"}
	}
	if err := c.db.Ping(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: err.Error()}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}
