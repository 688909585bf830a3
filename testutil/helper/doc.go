// Package helper provides fixtures and arrange helpers for tests that run against the in-memory event store.
package helper
