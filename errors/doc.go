// Package errors provides structured application errors with machine-readable
// codes and HTTP status mapping for apikit services.
package errors
