// Package oteladapters implements the eventstore observability interfaces with OpenTelemetry.
//
// The borrow desk wires them when OTEL_ENABLED is set, the desk's own handlers reuse the same
// collectors for their command and query metrics.
package oteladapters
