package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// Info returns a handler describing the product: service identity, the
// published API title and version, and the build that is serving it.
func Info(serviceName, apiTitle, apiVersion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		build := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"api": gin.H{
				"title":   apiTitle,
				"version": apiVersion,
			},
			"build":          build,
			"release":        build.Release(),
			"uptime_seconds": int64(time.Since(startTime).Seconds()),
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		})
	}
}
