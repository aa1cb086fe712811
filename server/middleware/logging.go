package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/logger"
)

// RequestLogger returns middleware that logs the start of every request and,
// if the handler chain panics, logs the failure before re-raising it.
//
// The contract is strict: exactly one entry log (path and raw query) is
// written before the downstream handler runs, and exactly one critical log
// (panic type, message, stack) is written if and only if the downstream
// handler panics. The panic is always re-raised with its original value so
// the outer recovery handler observes the same failure; a failing log sink
// never displaces it.
func RequestLogger(log *logger.Logger) Middleware {
	log = log.WithComponent("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Info("Request started", entryFields(r))

			defer func() {
				if rec := recover(); rec != nil {
					logPanic(log, r, rec)
					panic(rec)
				}
			}()

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			logCompletion(log, r, sw.status, time.Since(start))
		})
	}
}

// GinRequestLogger is the Gin-native request logger with the same contract as
// RequestLogger. It is not built on GinWrap because responses written by Gin
// handlers flow through c.Writer, so the completion status must be read from
// there after the chain finishes.
func GinRequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")
	return func(c *gin.Context) {
		r := c.Request
		log.Info("Request started", entryFields(r))

		defer func() {
			if rec := recover(); rec != nil {
				logPanic(log, r, rec)
				panic(rec)
			}
		}()

		start := time.Now()
		c.Next()

		logCompletion(log, r, c.Writer.Status(), time.Since(start))
	}
}

// entryFields builds the fields for the single entry log.
func entryFields(r *http.Request) map[string]interface{} {
	fields := map[string]interface{}{
		"method":          r.Method,
		logger.FieldPath:  r.URL.Path,
		logger.FieldQuery: r.URL.RawQuery,
	}
	if id := r.Header.Get(HeaderRequestID); id != "" {
		fields[logger.FieldRequestID] = id
	}
	return fields
}

// logPanic writes the single critical entry for an unhandled panic. The
// nested recover keeps a failing log sink from replacing the original panic
// value on the unwinding stack.
func logPanic(log *logger.Logger, r *http.Request, rec interface{}) {
	defer func() { _ = recover() }()
	log.Critical("Unhandled panic in request handler", map[string]interface{}{
		"panic_type":     fmt.Sprintf("%T", rec),
		"error":          fmt.Sprintf("%v", rec),
		"stack":          string(debug.Stack()),
		"method":         r.Method,
		logger.FieldPath: r.URL.Path,
	})
}

// logCompletion logs the completion entry at a level matching the status
// code: 5xx at error, 4xx at warn, everything else at debug.
func logCompletion(log *logger.Logger, r *http.Request, status int, elapsed time.Duration) {
	fields := map[string]interface{}{
		"method":         r.Method,
		logger.FieldPath: r.URL.Path,
		"status":         status,
		"duration_ms":    elapsed.Milliseconds(),
	}
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
