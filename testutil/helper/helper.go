package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

// GivenUniqueID generates a unique UUID for testing.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenEventsStored appends the events unconditionally, in order.
func GivenEventsStored(t testing.TB, store *memoryengine.EventStore, events ...core.DomainEvent) {
	t.Helper()

	everything := eventstore.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		storableEvent, err := shell.StorableEventWithEmptyMetadataFrom(event)
		require.NoError(t, err, "error in arranging test data")

		_, maxSequenceNumber, err := store.Query(t.Context(), everything)
		require.NoError(t, err, "error in arranging test data")

		err = store.Append(t.Context(), everything, maxSequenceNumber, storableEvent)
		require.NoError(t, err, "error in arranging test data")
	}
}

// StoredEventsOfType returns all stored events of the given type, unmarshalled.
func StoredEventsOfType(t testing.TB, store *memoryengine.EventStore, eventType string) core.DomainEvents {
	t.Helper()

	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf(eventType).Finalize()

	storableEvents, _, err := store.Query(t.Context(), filter)
	require.NoError(t, err)

	events, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return events
}

// FixtureBookAdded creates a catalog entry with the given number of copies.
func FixtureBookAdded(bookID uuid.UUID, totalCopies int, at time.Time) core.BookAddedToCatalog {
	return core.BuildBookAddedToCatalog(
		bookID,
		"978-0441013593",
		"Dune",
		"Frank Herbert",
		totalCopies,
		false,
		at,
	)
}

// FixtureRequestSubmitted creates a PENDING request for 14 days.
func FixtureRequestSubmitted(requestID uuid.UUID, userID string, bookID uuid.UUID, at time.Time) core.BorrowRequestSubmitted {
	return core.BuildBorrowRequestSubmitted(requestID, userID, bookID, "", core.DefaultLoanDays, at)
}

// FixtureRequestApproved approves the request with the given due date.
func FixtureRequestApproved(
	requestID uuid.UUID,
	userID string,
	bookID uuid.UUID,
	dueDate time.Time,
	at time.Time,
) core.BorrowRequestApproved {

	return core.BuildBorrowRequestApproved(requestID, userID, bookID.String(), "admin-1", "", dueDate, at)
}

// FixtureApprovedLoan is a submitted and approved request, approved at dueDate minus 14 days.
func FixtureApprovedLoan(requestID uuid.UUID, userID string, bookID uuid.UUID, dueDate time.Time) core.DomainEvents {
	approvedAt := dueDate.Add(-core.DefaultLoanDays * core.Day)

	return core.DomainEvents{
		FixtureRequestSubmitted(requestID, userID, bookID, approvedAt.Add(-time.Hour)),
		FixtureRequestApproved(requestID, userID, bookID, dueDate, approvedAt),
	}
}
