package shell

import (
	"time"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures the business outcome and the retry metadata
// without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Idempotent is true if no event had to be appended. This is a business outcome, not an error.
	Idempotent bool

	// Event is the appended event: the success event, or the failure event if the command was rejected.
	// It is nil for idempotent outcomes and for infrastructure errors.
	Event core.DomainEvent

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay only counts the backoff delays, not the execution time.
	TotalRetryDelay time.Duration

	// LastErrorType: "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded" or "other"
	LastErrorType string

	// RetriesExhausted is true if all attempts failed with a concurrency conflict.
	RetriesExhausted bool
}

// NewHandlerResult combines the last decision with the retry metadata.
func NewHandlerResult(decision core.DecisionResult, appended bool, retryMetrics RetryMetrics) HandlerResult {
	result := HandlerResult{
		Idempotent:       decision.IsIdempotent(),
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}

	if appended {
		result.Event = decision.Event
	}

	return result
}

// Succeeded is true if the command's success event was appended.
func (r HandlerResult) Succeeded() bool {
	return r.Event != nil && !r.Event.IsErrorEvent()
}
