// Package config loads the borrow desk configuration from the environment and builds
// the infrastructure it describes: PostgreSQL connections for the three supported drivers
// (pgx.Pool, sql.DB, sqlx.DB), the slog logger and the OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
