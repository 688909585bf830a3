package deactivatebook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/deactivatebook"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_DeactivateAndReactivate(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store, FixtureBookAdded(bookID, 2, now.Add(-time.Hour)))

	handler := deactivatebook.NewCommandHandler(store)

	// act
	deactivated, deactivateErr := handler.Handle(t.Context(), deactivatebook.BuildDeactivateCommand(bookID, now))
	again, againErr := handler.Handle(t.Context(), deactivatebook.BuildDeactivateCommand(bookID, now))
	reactivated, reactivateErr := handler.Handle(t.Context(), deactivatebook.BuildReactivateCommand(bookID, now))

	// assert
	require.NoError(t, deactivateErr)
	require.NoError(t, againErr)
	require.NoError(t, reactivateErr)
	assert.True(t, deactivated.Succeeded())
	assert.True(t, again.Idempotent)
	assert.True(t, reactivated.Succeeded())
	assert.Len(t, StoredEventsOfType(t, store, core.BookDeactivatedEventType), 1)
	assert.Len(t, StoredEventsOfType(t, store, core.BookReactivatedEventType), 1)
}

func Test_CommandHandler_Handle_UnknownBook(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := deactivatebook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), deactivatebook.BuildDeactivateCommand(GivenUniqueID(t), time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	require.NotNil(t, result.Event)
	assert.True(t, result.Event.IsErrorEvent())
	assert.Equal(t, 1, store.Len())
}
