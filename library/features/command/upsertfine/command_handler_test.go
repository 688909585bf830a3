package upsertfine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/upsertfine"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_RepeatedRunsKeepOneUnpaidFine(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	requestID := uuid.New()
	GivenEventsStored(t, store, FixtureApprovedLoan(requestID, "member-1", uuid.New(), dueDate)...)
	handler := upsertfine.NewCommandHandler(store)

	// act
	first, err := handler.Handle(t.Context(), upsertfine.BuildCommand(requestID, uuid.New(), core.DefaultFinePerDay, now))
	require.NoError(t, err)
	second, err := handler.Handle(t.Context(), upsertfine.BuildCommand(requestID, uuid.New(), core.DefaultFinePerDay, now))
	require.NoError(t, err)
	third, err := handler.Handle(t.Context(), upsertfine.BuildCommand(requestID, uuid.New(), core.DefaultFinePerDay, now.Add(core.Day)))
	require.NoError(t, err)

	// assert
	assert.Equal(t, core.FineIssuedEventType, first.Event.IsEventType())
	assert.True(t, second.Idempotent)
	assert.Equal(t, core.FineAmountUpdatedEventType, third.Event.IsEventType())
	assert.Len(t, StoredEventsOfType(t, store, core.FineIssuedEventType), 1)
}
