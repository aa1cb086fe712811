// Package server provides the unified HTTP server for apikit products,
// backed by Gin with HTTP/2 cleartext support so REST traffic and any extra
// http.Handler mounts share one port.
//
// The server follows the component pattern for lifecycle management. The
// bootstrap package owns middleware ordering and route registration; this
// package supplies the building blocks.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic containment with a structured 500 response
//   - RequestLogger: request entry/completion logging and panic reporting
//   - HTTPSRedirect: redirect plain-HTTP traffic to HTTPS
//   - Auth: bearer-token authentication against a validation policy
//   - Authorize/RequireRoles: role-based authorization
//   - CORS: cross-origin resource sharing
//   - RequestID: request id generation and propagation
//   - RateLimit: sliding-window rate limiting, bucketed per tenant
//   - BodySizeLimit: request body size limits
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: health check aggregation
//   - /alive, /ready: Kubernetes probes
//   - /info, /version: build and runtime information
//   - /metrics: runtime memory and goroutine counters
//   - /swagger/: interactive API documentation (development only)
package server
