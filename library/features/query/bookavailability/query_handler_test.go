package bookavailability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/bookavailability"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_OneBookOrAll(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	first, second := GivenUniqueID(t), GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store,
		FixtureBookAdded(first, 1, now),
		FixtureBookAdded(second, 2, now),
	)
	GivenEventsStored(t, store, FixtureApprovedLoan(GivenUniqueID(t), "member-1", first, now.Add(time.Hour))...)
	handler := bookavailability.NewQueryHandler(store)

	// act
	one, oneErr := handler.Handle(t.Context(), bookavailability.BuildQuery(first))
	all, allErr := handler.Handle(t.Context(), bookavailability.BuildQueryForAllBooks())

	// assert
	require.NoError(t, oneErr)
	require.NoError(t, allErr)
	require.Equal(t, 1, one.Count)
	assert.Equal(t, 0, one.Books[0].AvailableCopies)
	assert.Equal(t, 1, one.Books[0].BorrowedCopies)
	assert.Equal(t, 2, all.Count)
}

func Test_QueryHandler_Handle_UnknownBook(t *testing.T) {
	// arrange
	handler := bookavailability.NewQueryHandler(memoryengine.NewEventStore())

	// act
	result, err := handler.Handle(t.Context(), bookavailability.BuildQuery(GivenUniqueID(t)))

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Books)
}
