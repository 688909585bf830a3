package submitborrowrequest_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/submitborrowrequest"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_TwoMembersCanRequestTheLastCopy(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := uuid.New()
	now := time.Now()
	GivenEventsStored(t, store, FixtureBookAdded(bookID, 1, now.Add(-time.Hour)))

	handler := submitborrowrequest.NewCommandHandler(store, core.DefaultLoanPolicy())

	// act
	first, firstErr := handler.Handle(t.Context(), submitborrowrequest.BuildCommand(uuid.New(), "member-1", bookID, "", 0, now))
	second, secondErr := handler.Handle(t.Context(), submitborrowrequest.BuildCommand(uuid.New(), "member-2", bookID, "", 0, now))

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.True(t, first.Succeeded())
	assert.True(t, second.Succeeded())
	assert.Equal(t, 3, store.Len())
}

func Test_CommandHandler_Handle_RecordsTheFailure(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := submitborrowrequest.NewCommandHandler(store, core.DefaultLoanPolicy())

	// act
	result, err := handler.Handle(t.Context(), submitborrowrequest.BuildCommand(uuid.New(), "member-1", uuid.New(), "", 0, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	require.NotNil(t, result.Event)
	assert.True(t, result.Event.IsErrorEvent())
	assert.Equal(t, 1, store.Len())
}


func Test_CommandHandler_Handle_RequestIDCannotBeReusedForAnotherBook(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	firstBookID := uuid.New()
	secondBookID := uuid.New()
	requestID := uuid.New()
	now := time.Now()
	GivenEventsStored(
		t,
		store,
		FixtureBookAdded(firstBookID, 1, now.Add(-time.Hour)),
		FixtureBookAdded(secondBookID, 1, now.Add(-time.Hour)),
	)

	handler := submitborrowrequest.NewCommandHandler(store, core.DefaultLoanPolicy())
	_, err := handler.Handle(t.Context(), submitborrowrequest.BuildCommand(requestID, "member-1", firstBookID, "", 0, now))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(t.Context(), submitborrowrequest.BuildCommand(requestID, "member-2", secondBookID, "", 0, now))

	// assert
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.False(t, result.Succeeded())
	assert.Len(t, StoredEventsOfType(t, store, core.BorrowRequestSubmittedEventType), 1)
}

func Test_CommandHandler_Handle_RepeatedSubmitIsIdempotent(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := uuid.New()
	requestID := uuid.New()
	now := time.Now()
	GivenEventsStored(t, store, FixtureBookAdded(bookID, 1, now.Add(-time.Hour)))

	handler := submitborrowrequest.NewCommandHandler(store, core.DefaultLoanPolicy())
	_, err := handler.Handle(t.Context(), submitborrowrequest.BuildCommand(requestID, "member-1", bookID, "", 0, now))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(t.Context(), submitborrowrequest.BuildCommand(requestID, "member-1", bookID, "", 0, now))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 2, store.Len())
}
