package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/auth"
	apperrors "github.com/tenantify/apikit/errors"
)

// RequireRoles returns a Gin middleware that allows the request only when the
// authenticated claims carry every listed role. It must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFromContext(c.Request.Context())
		if !ok {
			abortWithAppError(c, apperrors.Unauthorized(""))
			return
		}
		for _, role := range roles {
			if !claims.HasRole(role) {
				abortWithAppError(c, apperrors.Forbidden(""))
				return
			}
		}
		c.Next()
	}
}

// Authorize returns the pipeline-level authorization middleware. Requirements
// map URL path prefixes to the roles needed under them; paths with no
// matching prefix pass through. Per-route checks beyond this belong on the
// routes themselves via RequireRoles.
func Authorize(requirements map[string][]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for prefix, roles := range requirements {
			if !strings.HasPrefix(path, prefix) {
				continue
			}
			claims, ok := auth.ClaimsFromContext(c.Request.Context())
			if !ok {
				abortWithAppError(c, apperrors.Unauthorized(""))
				return
			}
			for _, role := range roles {
				if !claims.HasRole(role) {
					abortWithAppError(c, apperrors.Forbidden(""))
					return
				}
			}
		}
		c.Next()
	}
}
