// Package desk is the borrow desk application service.
//
// It composes the command and query handlers of the feature slices, wraps them with
// metrics, tracing and logging, and runs the notification side effects after successful
// state transitions. The HTTP API, the automation runner and the CLI all talk to a Desk,
// which gets its event store injected at process start.
package desk
