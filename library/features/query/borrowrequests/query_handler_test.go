package borrowrequests_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/borrowrequests"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ReturnsOwnRequests(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	ownRequestID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store,
		FixtureBookAdded(bookID, 2, now.Add(-core.Day)),
		FixtureRequestSubmitted(ownRequestID, "member-1", bookID, now),
		FixtureRequestSubmitted(GivenUniqueID(t), "member-2", bookID, now),
	)
	handler := borrowrequests.NewQueryHandler(store)

	// act
	result, err := handler.Handle(t.Context(), borrowrequests.BuildQuery("member-1", ""))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, ownRequestID.String(), result.Requests[0].RequestID)
	assert.Equal(t, core.BorrowStatusPending, result.Requests[0].Status)
	assert.Equal(t, uint(2), result.SequenceNumber, "highest matching sequence number")
}

func Test_QueryHandler_Handle_EmptyStore(t *testing.T) {
	// arrange
	handler := borrowrequests.NewQueryHandler(memoryengine.NewEventStore())

	// act
	result, err := handler.Handle(t.Context(), borrowrequests.BuildQuery("", ""))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Requests)
}

func Test_QueryHandler_Handle_SingleRequest(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	wantedRequestID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store,
		FixtureBookAdded(bookID, 2, now.Add(-core.Day)),
		FixtureRequestSubmitted(GivenUniqueID(t), "member-1", bookID, now.Add(-time.Hour)),
		FixtureRequestSubmitted(wantedRequestID, "member-1", bookID, now),
	)
	handler := borrowrequests.NewQueryHandler(store)

	// act
	result, err := handler.Handle(t.Context(), borrowrequests.BuildRequestQuery(wantedRequestID.String()))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, wantedRequestID.String(), result.Requests[0].RequestID)
	assert.Equal(t, bookID.String(), result.Requests[0].BookID)
}
