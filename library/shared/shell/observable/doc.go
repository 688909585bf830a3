// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The core handlers stay free of observability code: they report their business outcome
// and retry metadata through shell.HandlerResult, and the wrappers translate that into
// metrics, spans and log records. Both wrappers satisfy the same interfaces as the handlers they wrap,
// so the composition root decides whether a handler gets instrumented.
//
// Command outcomes are classified as success, idempotent, rejected, canceled, timeout, conflict or error.
// A rejected command is a business outcome, it is logged at warn level and does not fail its span.
package observable
