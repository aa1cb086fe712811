package bootstrap

import (
	"fmt"

	"github.com/tenantify/apikit/config"
	"github.com/tenantify/apikit/database"
	"github.com/tenantify/apikit/server"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds BaseConfig satisfies it via promoted methods.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	GetAPIConfig() *config.APIConfig
	GetServerConfig() *server.Config
	GetDatabaseConfig() *database.Config
	ApplyDefaults()
	Validate() error
}

// BaseConfig carries the sections every product needs. Products extend it by
// embedding:
//
//	type MyConfig struct {
//	    bootstrap.BaseConfig `yaml:",inline" mapstructure:",squash"`
//	    Billing BillingConfig `yaml:"billing" mapstructure:"billing"`
//	}
type BaseConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	API      config.APIConfig `yaml:"api" mapstructure:"api"`
	Server   server.Config    `yaml:"server" mapstructure:"server"`
	Database database.Config  `yaml:"database" mapstructure:"database"`
}

// GetAPIConfig returns the bearer-token verification section.
func (c *BaseConfig) GetAPIConfig() *config.APIConfig { return &c.API }

// GetServerConfig returns the HTTP server section.
func (c *BaseConfig) GetServerConfig() *server.Config { return &c.Server }

// GetDatabaseConfig returns the database section.
func (c *BaseConfig) GetDatabaseConfig() *database.Config { return &c.Database }

// ApplyDefaults fills unset fields across all sections.
func (c *BaseConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
}

// Validate checks all sections and returns the first problem found.
func (c *BaseConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("config.api: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config.database: %w", err)
	}
	return nil
}
