// Package database provides the product-scoped database context built on
// GORM, with driver selection (sqlite, postgres), retrying connect, pooling,
// and a lifecycle component for the bootstrap registry. The context is
// constructed once at startup, owned by the orchestrator, and shared by
// reference with the entity service; concurrent access relies on the
// underlying sql.DB connection pool.
package database
