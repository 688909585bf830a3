package marknotificationread_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/marknotificationread"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_MarksOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	notificationID := uuid.New()
	now := time.Now()
	GivenEventsStored(t, store, core.BuildNotificationCreated(
		notificationID, "member-1", "Fine issued", "You owe 1.00", core.NotificationKindFine, now.Add(-time.Hour),
	))
	handler := marknotificationread.NewCommandHandler(store)

	// act
	first, firstErr := handler.Handle(t.Context(), marknotificationread.BuildCommand(notificationID, "member-1", now))
	second, secondErr := handler.Handle(t.Context(), marknotificationread.BuildCommand(notificationID, "member-1", now))

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.True(t, first.Succeeded())
	assert.True(t, second.Idempotent)
	assert.Len(t, StoredEventsOfType(t, store, core.NotificationMarkedReadEventType), 1)
}

func Test_CommandHandler_Handle_UnknownNotificationAppendsNothing(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := marknotificationread.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), marknotificationread.BuildCommand(uuid.New(), "member-1", time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "notification not found", core.FailureReason(err))
	assert.False(t, result.Idempotent)
	assert.Nil(t, result.Event)
	assert.Empty(t, StoredEventsOfType(t, store, core.NotificationMarkedReadEventType))
}
