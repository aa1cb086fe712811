package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics returns a handler reporting process runtime counters. It is a
// lightweight operational snapshot, not a metrics-pipeline scrape target.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(http.StatusOK, gin.H{
			"uptime_seconds": int64(time.Since(startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory": gin.H{
				"heap_alloc_mb": m.HeapAlloc / 1024 / 1024,
				"heap_objects":  m.HeapObjects,
				"sys_mb":        m.Sys / 1024 / 1024,
				"gc_runs":       m.NumGC,
				"gc_pause_ms":   float64(m.PauseTotalNs) / 1e6,
				"next_gc_mb":    m.NextGC / 1024 / 1024,
			},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
