package shell

import (
	"context"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// DecideFunc is the pure business decision of one command, fed with the history of its consistency boundary.
type DecideFunc func(history core.DomainEvents) core.DecisionResult

// DecideAndAppend runs one Query -> Unmarshal -> Decide -> Append cycle against the boundary described by filter.
//
// The boolean is true if an event was appended. A business rejection appends the failure event
// and returns the decision's error, a concurrency conflict returns eventstore.ErrConcurrencyConflict
// so that RetryWithExponentialBackoff can start over with fresh history.
func DecideAndAppend(
	ctx context.Context,
	eventStore EventStore,
	filter eventstore.Filter,
	decide DecideFunc,
) (core.DecisionResult, bool, error) {

	// Query phase
	storableEvents, maxSequenceNumber, err := eventStore.Query(ctx, filter)
	if err != nil {
		return core.DecisionResult{}, false, err
	}

	// Unmarshal phase
	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return core.DecisionResult{}, false, err
	}

	// Decide phase
	result := decide(history)
	if !result.HasEventToAppend() {
		return result, false, result.HasError()
	}

	// Append phase
	storableEvent, err := StorableEventFrom(result.Event, MetadataFor(ctx))
	if err != nil {
		return result, false, err
	}

	if err = eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return result, false, err
	}

	return result, true, result.HasError()
}

// HandleWithRetry wraps DecideAndAppend into the retry loop shared by all command handlers.
// Command handlers must see their own writes, so the query always goes to the primary.
func HandleWithRetry(
	ctx context.Context,
	eventStore EventStore,
	filter eventstore.Filter,
	decide DecideFunc,
	retryOptions ...RetryOption,
) (HandlerResult, error) {

	ctx = eventstore.WithStrongConsistency(ctx)

	var (
		decision core.DecisionResult
		appended bool
	)

	retryMetrics, err := RetryWithExponentialBackoff(
		ctx,
		func(ctx context.Context) error {
			var execErr error
			decision, appended, execErr = DecideAndAppend(ctx, eventStore, filter, decide)

			return execErr
		},
		retryOptions...,
	)

	return NewHandlerResult(decision, appended, retryMetrics), err
}
