package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tenantify/apikit/errors"
	"github.com/tenantify/apikit/logger"
)

// Recovery returns the outermost Gin middleware. It converts any panic that
// escapes the handler chain into a 500 response so a single failing request
// cannot take down the process. Detailed failure logging happens in the
// request logger before the panic reaches this handler.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Panic recovered", map[string]interface{}{
					logger.FieldError: fmt.Sprintf("%v", rec),
					logger.FieldPath:  c.Request.URL.Path,
					"method":          c.Request.Method,
				})
				abortWithAppError(c, apperrors.Internal(nil))
			}
		}()
		c.Next()
	}
}
