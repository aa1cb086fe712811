package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tenantify/apikit/errors"
)

// Middleware wraps an http.Handler with additional behavior. This is the
// standard Go middleware signature and the single middleware type for the
// server — it works for Gin routes and any other http.Handler mounted on the
// ServeMux.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// GinWrap adapts a standard Middleware for use in a Gin middleware chain.
// Request modifications propagate, but responses written by Gin handlers flow
// through c.Writer, not through any writer the wrapped middleware installs.
// Middleware that needs to observe the response (status, size) must be
// written natively against gin.Context.
func GinWrap(mw Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			// Propagate request modifications (e.g. an enriched context) to Gin.
			c.Request = r
			c.Next()
		})
		mw(next).ServeHTTP(c.Writer, c.Request)
	}
}

// abortWithAppError writes the unified error response and stops the chain.
func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
