package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/version"
)

// Liveness returns a handler for K8s liveness probes. It confirms the
// process is up and names the build, nothing more; component health belongs
// to the readiness probe.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"service":   serviceName,
			"build":     version.Get().String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
