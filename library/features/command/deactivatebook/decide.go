package deactivatebook

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	failureReasonBookNotFound = "book not found"
)

type state struct {
	bookExists bool
	isActive   bool
}

// Decide implements the business logic for (de)activating a book.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: the command is received
//	THEN: BookDeactivated or BookReactivated event is generated
//	ERROR: "book not found" if the book was never added to the catalog
//	IDEMPOTENCY: If the book already is in the requested state, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID.String())

	if !s.bookExists {
		event := core.BuildChangingCatalogFailed(command.BookID, failureReasonBookNotFound, command.OccurredAt)
		return core.ErrorDecision(event, core.Failure(event.IsEventType(), failureReasonBookNotFound, core.ErrNotFound))
	}

	if s.isActive == command.Reactivate {
		return core.IdempotentDecision()
	}

	if command.Reactivate {
		return core.SuccessDecision(core.BuildBookReactivated(command.BookID, command.OccurredAt))
	}

	return core.SuccessDecision(core.BuildBookDeactivated(command.BookID, command.OccurredAt))
}

func project(history core.DomainEvents, bookID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookExists = true
				s.isActive = true
			}

		case core.BookDeactivated:
			if e.BookID == bookID {
				s.isActive = false
			}

		case core.BookReactivated:
			if e.BookID == bookID {
				s.isActive = true
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified book which are relevant for this feature/use-case.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDeactivatedEventType,
			core.BookReactivatedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("BookID", bookID.String()),
		).
		Finalize()
}
