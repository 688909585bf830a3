package returnborrowedbook_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/markborrowrequestoverdue"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/returnborrowedbook"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_ReturnsTheLoan(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	requestID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store, FixtureApprovedLoan(requestID, "member-1", bookID, now.Add(core.Day))...)

	handler := returnborrowedbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), returnborrowedbook.BuildCommand(requestID, "member-1", "GOOD", "", now))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Len(t, StoredEventsOfType(t, store, core.BorrowedBookReturnedEventType), 1)
}

func Test_CommandHandler_Handle_RecordsTheFailure(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	requestID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store, FixtureApprovedLoan(requestID, "member-1", bookID, now.Add(core.Day))...)

	handler := returnborrowedbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), returnborrowedbook.BuildCommand(requestID, "member-2", "GOOD", "", now))

	// assert
	assert.ErrorIs(t, err, core.ErrNotPermitted)
	require.NotNil(t, result.Event)
	assert.True(t, result.Event.IsErrorEvent())
	assert.Empty(t, StoredEventsOfType(t, store, core.BorrowedBookReturnedEventType))
}

func Test_CommandHandler_Handle_ConcurrentReturnAndOverdueMark(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	requestID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store, FixtureApprovedLoan(requestID, "member-1", bookID, now.Add(-core.Day))...)

	returnHandler := returnborrowedbook.NewCommandHandler(store)
	markHandler := markborrowrequestoverdue.NewCommandHandler(store)

	var (
		wg         sync.WaitGroup
		returned   shell.HandlerResult
		returnErr  error
		markResult shell.HandlerResult
		markErr    error
	)

	// act
	wg.Add(2)
	go func() {
		defer wg.Done()
		returned, returnErr = returnHandler.Handle(t.Context(), returnborrowedbook.BuildCommand(requestID, "member-1", "GOOD", "", now))
	}()
	go func() {
		defer wg.Done()
		markResult, markErr = markHandler.Handle(t.Context(), markborrowrequestoverdue.BuildCommand(requestID, now))
	}()
	wg.Wait()

	// assert
	require.NoError(t, returnErr)
	require.NoError(t, markErr)
	assert.True(t, returned.Succeeded())

	storable, _, err := store.Query(t.Context(), markborrowrequestoverdue.BuildEventFilter(requestID))
	require.NoError(t, err)

	eventTypes := make([]string, 0, len(storable))
	for _, e := range storable {
		eventTypes = append(eventTypes, e.EventType)
	}

	assert.Equal(t, core.BorrowedBookReturnedEventType, eventTypes[len(eventTypes)-1], "nothing follows the return")
	assert.Len(t, StoredEventsOfType(t, store, core.BorrowedBookReturnedEventType), 1)

	if markResult.Succeeded() {
		assert.Equal(t, []string{
			core.BorrowRequestSubmittedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowRequestMarkedOverdueEventType,
			core.BorrowedBookReturnedEventType,
		}, eventTypes)
	} else {
		assert.True(t, markResult.Idempotent)
		assert.Empty(t, StoredEventsOfType(t, store, core.BorrowRequestMarkedOverdueEventType))
	}
}
