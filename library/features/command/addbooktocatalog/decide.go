package addbooktocatalog

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	failureReasonNoCopies = "a book needs at least one copy"
)

// Decide implements the business logic to determine whether a book should be added to the catalog.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: AddBookToCatalog command is received
//	THEN: BookAddedToCatalog event is generated
//	ERROR: "a book needs at least one copy" if TotalCopies < 1
//	IDEMPOTENCY: If the book is already in the catalog, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()

	for _, event := range history {
		if e, ok := event.(core.BookAddedToCatalog); ok && e.BookID == bookID {
			return core.IdempotentDecision()
		}
	}

	if command.TotalCopies < 1 {
		event := core.BuildChangingCatalogFailed(command.BookID, failureReasonNoCopies, command.OccurredAt)
		return core.ErrorDecision(event, core.Failure(event.IsEventType(), failureReasonNoCopies, core.ErrInvalidInput))
	}

	return core.SuccessDecision(
		core.BuildBookAddedToCatalog(
			command.BookID,
			command.ISBN,
			command.Title,
			command.Authors,
			command.TotalCopies,
			command.IsFeatured,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for querying all events
// related to the specified book which are relevant for this feature/use-case.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("BookID", bookID.String()),
		).
		Finalize()
}
