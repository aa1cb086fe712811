package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/component"
)

// Readiness returns a handler for K8s readiness probes. The service accepts
// traffic only while no registered component reports unhealthy; failing
// components are named in the response so the probe output is actionable.
func Readiness(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var failing []string
		if checker != nil {
			for _, h := range checker(c.Request.Context()) {
				if h.Status == component.StatusUnhealthy {
					failing = append(failing, h.Name)
				}
			}
		}

		status, httpStatus := "ready", http.StatusOK
		if len(failing) > 0 {
			status, httpStatus = "not_ready", http.StatusServiceUnavailable
		}

		body := gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if len(failing) > 0 {
			body["failing"] = failing
		}
		c.JSON(httpStatus, body)
	}
}
