// Package entity provides a generic data-access façade bound to one database
// context. A single Service instance is registered as a process-wide
// singleton at startup and shared by every request handler; it holds no
// per-request state and relies on the connection pool of the underlying
// handle for concurrent access.
package entity
