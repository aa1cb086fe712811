package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/version"
)

// Version returns a handler reporting the build identity alongside the
// published API version.
func Version(apiVersion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		build := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"api_version": apiVersion,
			"build":       build,
			"short":       build.String(),
		})
	}
}
