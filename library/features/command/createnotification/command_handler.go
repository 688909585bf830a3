package createnotification

import (
	"context"

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

// Handle retries on concurrency conflicts and returns an explicit HandlerResult.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	return shell.HandleWithRetry(
		ctx,
		h.eventStore,
		BuildEventFilter(command.UserID, command.OccurredAt),
		func(history core.DomainEvents) core.DecisionResult {
			return Decide(history, command)
		},
		h.retryOptions...,
	)
}
