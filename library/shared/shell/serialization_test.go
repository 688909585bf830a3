package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

func Test_StorableEventFrom_KeepsEventTypeOccurredAtAndMetadata(t *testing.T) {
	// arrange
	occurredAt := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)
	event := core.BuildFineIssued(uuid.New(), "user-1", uuid.New(), decimal.RequireFromString("2.50"), 1, occurredAt)
	correlationID := uuid.New()
	metadata := shell.BuildEventMetadata(uuid.New(), correlationID, correlationID)

	// act
	storableEvent, err := shell.StorableEventFrom(event, metadata)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.FineIssuedEventType, storableEvent.EventType)
	assert.Equal(t, occurredAt.Truncate(time.Microsecond), storableEvent.OccurredAt)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"Amount":"2.5"`)

	restoredMetadata, err := shell.EventMetadataFrom(storableEvent)
	require.NoError(t, err)
	assert.Equal(t, correlationID.String(), restoredMetadata.CorrelationID)
}

func Test_DomainEventFrom_RestoresEveryKnownEventType(t *testing.T) {
	now := time.Now()
	bookID := uuid.New()
	requestID := uuid.New()
	fineID := uuid.New()
	notificationID := uuid.New()

	events := core.DomainEvents{
		core.BuildBookAddedToCatalog(bookID, "978-3-16-148410-0", "Dune", "Frank Herbert", 2, false, now),
		core.BuildBookDeactivated(bookID, now),
		core.BuildBookReactivated(bookID, now),
		core.BuildChangingCatalogFailed(bookID, "book not found", now),
		core.BuildBorrowRequestSubmitted(requestID, "user-1", bookID, "exam", 14, now),
		core.BuildSubmittingBorrowRequestFailed(requestID, "user-1", bookID, "book is not available", now),
		core.BuildBorrowRequestApproved(requestID, "user-1", bookID.String(), "admin-1", "ok", now.Add(14*core.Day), now),
		core.BuildBorrowRequestRejected(requestID, "user-1", bookID.String(), "admin-1", "no", now),
		core.BuildDecidingBorrowRequestFailed(requestID, "admin-1", "request is not pending", now),
		core.BuildBorrowedBookReturned(requestID, "user-1", bookID.String(), "GOOD", "", now),
		core.BuildReturningBorrowedBookFailed(requestID, "user-1", "not your request", now),
		core.BuildBorrowRequestMarkedOverdue(requestID, "user-1", bookID.String(), now, now),
		core.BuildFineIssued(fineID, "user-1", requestID, decimal.NewFromInt(300), 3, now),
		core.BuildFineAmountUpdated(fineID.String(), "user-1", requestID, decimal.NewFromInt(400), 4, now),
		core.BuildFinePaid(fineID, "user-1", requestID.String(), decimal.NewFromInt(400), now),
		core.BuildPayingFineFailed(fineID, "user-1", "fine is already paid", now),
		core.BuildNotificationCreated(notificationID, "user-1", "Fine issued", "You owe 300", core.NotificationKindFineIssued, now),
		core.BuildNotificationMarkedRead(notificationID, "user-1", now),
	}

	for _, event := range events {
		t.Run(event.IsEventType(), func(t *testing.T) {
			// arrange
			storableEvent, err := shell.StorableEventWithEmptyMetadataFrom(event)
			require.NoError(t, err)

			// act
			restored, err := shell.DomainEventFrom(storableEvent)

			// assert
			require.NoError(t, err)
			assert.Equal(t, event.IsEventType(), restored.IsEventType())
			assert.True(t, event.HasOccurredAt().Equal(restored.HasOccurredAt()))
			assert.Equal(t, event.IsErrorEvent(), restored.IsErrorEvent())
		})
	}
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata("SomethingElse", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}
