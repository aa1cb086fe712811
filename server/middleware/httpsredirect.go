package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPSRedirect returns a Gin middleware that redirects plain-HTTP requests
// to their HTTPS equivalent. Requests already carried over TLS, or marked as
// such by a terminating proxy via X-Forwarded-Proto, pass through. When
// enabled is false the middleware is a no-op, which is the usual setting for
// local development.
func HTTPSRedirect(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled || isSecure(c.Request) {
			c.Next()
			return
		}
		target := "https://" + c.Request.Host + c.Request.URL.RequestURI()
		c.Redirect(http.StatusPermanentRedirect, target)
		c.Abort()
	}
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
