package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tenantify/apikit/auth"
	apperrors "github.com/tenantify/apikit/errors"
	"github.com/tenantify/apikit/logger"
)

// ClaimsKey is the Gin context key under which validated claims are stored.
// The claims are also placed on the request context, which is the preferred
// way to read them (auth.ClaimsFromContext).
const ClaimsKey = "claims"

// AuthConfig configures the bearer-token authentication middleware.
type AuthConfig struct {
	// Policy validates bearer tokens. Required.
	Policy *auth.TokenValidationPolicy
	// SkipPaths are URL path prefixes that bypass authentication, e.g.
	// health probes and API documentation.
	SkipPaths []string
}

// Auth returns a Gin middleware that validates Bearer tokens against the
// configured policy. Every request is verified independently; nothing is
// cached between requests. Validated claims are stored on the request
// context and in the Gin context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithAppError(c, apperrors.Unauthorized("Authorization header required."))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithAppError(c, apperrors.Unauthorized("Invalid authorization header format."))
			return
		}

		claims, err := cfg.Policy.Verify(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithAppError(c, apperrors.TokenExpired())
				return
			}
			abortWithAppError(c, apperrors.InvalidToken())
			return
		}

		c.Request = c.Request.WithContext(auth.ContextWithClaims(c.Request.Context(), claims))
		c.Set(ClaimsKey, claims)
		if claims.TenantID != "" {
			c.Set(logger.FieldTenantID, claims.TenantID)
		}
		c.Next()
	}
}
