package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims consumed by the bootstrap layer. Products that
// need more claims parse the token themselves using the policy's key.
type Claims struct {
	jwt.RegisteredClaims

	// TenantID scopes the request to one tenant of the product.
	TenantID string `json:"tenant_id,omitempty"`

	// Roles are coarse-grained authorization roles.
	Roles []string `json:"roles,omitempty"`
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type claimsContextKey struct{}

// ContextWithClaims stores validated claims in the request context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the validated claims of the current request, if
// authentication ran for it.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok
}
