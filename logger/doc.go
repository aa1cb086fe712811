// Package logger provides structured logging for apikit services built on
// zerolog. A process-wide logger is initialized once from configuration during
// bootstrap; request handling code derives component- or field-scoped child
// loggers from it.
package logger
