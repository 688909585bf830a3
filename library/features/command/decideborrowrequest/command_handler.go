package decideborrowrequest

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

// CommandHandler orchestrates Query → Unmarshal → Decide → Append.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	eventStore   shell.EventStore
	retryOptions []shell.RetryOption
}

// NewCommandHandler creates a new CommandHandler with the provided EventStore dependency.
func NewCommandHandler(eventStore shell.EventStore, retryOptions ...shell.RetryOption) CommandHandler {
	return CommandHandler{
		eventStore:   eventStore,
		retryOptions: retryOptions,
	}
}

// Handle looks up the request's book first, the book is part of the consistency boundary.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	bookID, err := h.bookOfRequest(ctx, command.RequestID)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	return shell.HandleWithRetry(
		ctx,
		h.eventStore,
		BuildEventFilter(command.RequestID, bookID),
		func(history core.DomainEvents) core.DecisionResult {
			return Decide(history, command)
		},
		h.retryOptions...,
	)
}

func (h CommandHandler) bookOfRequest(ctx context.Context, requestID uuid.UUID) (core.BookIDString, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BorrowRequestSubmittedEventType).
		AndAnyPredicateOf(eventstore.P("RequestID", requestID.String())).
		Finalize()

	storableEvents, _, err := h.eventStore.Query(eventstore.WithStrongConsistency(ctx), filter)
	if err != nil {
		return "", err
	}

	events, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return "", err
	}

	for _, event := range events {
		if e, ok := event.(core.BorrowRequestSubmitted); ok {
			return e.BookID, nil
		}
	}

	return "", nil
}
