package config

import (
	"encoding/base64"
	"fmt"
)

// APIConfig holds the bearer-token verification material for an API product.
// It is loaded once at construction and immutable afterwards. PublicKey must
// decode to a valid SPKI-encoded elliptic-curve public key; the decode to key
// material happens in the auth package during bootstrap and any failure there
// aborts startup.
type APIConfig struct {
	// PublicKey is the base64-encoded SPKI form of the EC public key whose
	// private counterpart signs bearer tokens.
	PublicKey string `yaml:"public_key" mapstructure:"public_key" validate:"required"`

	// Issuer is the expected "iss" claim of accepted tokens.
	Issuer string `yaml:"issuer" mapstructure:"issuer" validate:"required"`
}

// Validate checks that the fields are present and the key is valid base64.
// Structural key validation (SPKI, curve) is performed by auth.ImportPublicKey.
func (c *APIConfig) Validate() error {
	if c.PublicKey == "" {
		return fmt.Errorf("api.public_key is required")
	}
	if _, err := base64.StdEncoding.DecodeString(c.PublicKey); err != nil {
		return fmt.Errorf("api.public_key is not valid base64: %w", err)
	}
	if c.Issuer == "" {
		return fmt.Errorf("api.issuer is required")
	}
	return nil
}
