// Package memoryengine keeps the events in process memory.
//
// It implements the same Filter and optimistic concurrency semantics as postgresengine and is used for
// tests and for running the borrow desk with STORE=memory. Nothing survives a restart.
package memoryengine
