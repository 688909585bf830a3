// Package shell translates between the functional core (domain events, Decide functions)
// and the event store: serialization with json-iterator, event metadata, retrying on
// concurrency conflicts and the logging/metrics/tracing helpers used by all handlers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
