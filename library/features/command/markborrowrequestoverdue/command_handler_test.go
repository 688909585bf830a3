package markborrowrequestoverdue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/markborrowrequestoverdue"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_MarksPastDueLoanOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	requestID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store, FixtureApprovedLoan(requestID, "member-1", bookID, now.Add(-core.Day))...)

	handler := markborrowrequestoverdue.NewCommandHandler(store)

	// act
	first, firstErr := handler.Handle(t.Context(), markborrowrequestoverdue.BuildCommand(requestID, now))
	second, secondErr := handler.Handle(t.Context(), markborrowrequestoverdue.BuildCommand(requestID, now.Add(time.Hour)))

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.True(t, first.Succeeded())
	assert.True(t, second.Idempotent)

	marked := StoredEventsOfType(t, store, core.BorrowRequestMarkedOverdueEventType)
	require.Len(t, marked, 1)
	assert.Equal(t, "member-1", marked[0].(core.BorrowRequestMarkedOverdue).UserID)
}

func Test_CommandHandler_Handle_LoanNotYetDueIsLeftAlone(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	bookID := GivenUniqueID(t)
	requestID := GivenUniqueID(t)
	now := time.Now()
	GivenEventsStored(t, store, FixtureApprovedLoan(requestID, "member-1", bookID, now.Add(core.Day))...)

	handler := markborrowrequestoverdue.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), markborrowrequestoverdue.BuildCommand(requestID, now))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 2, store.Len())
}

func Test_CommandHandler_Handle_UnknownRequestIsANoOp(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := markborrowrequestoverdue.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), markborrowrequestoverdue.BuildCommand(GivenUniqueID(t), time.Now()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 0, store.Len())
}
