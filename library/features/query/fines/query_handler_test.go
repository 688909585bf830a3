package fines_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/fines"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ReturnsOwnFinesOnly(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	now := time.Now()
	GivenEventsStored(t, store,
		core.BuildFineIssued(GivenUniqueID(t), "member-1", GivenUniqueID(t), decimal.RequireFromString("2.5"), 1, now),
		core.BuildFineIssued(GivenUniqueID(t), "member-2", GivenUniqueID(t), decimal.NewFromInt(100), 1, now),
	)
	handler := fines.NewQueryHandler(store)

	// act
	result, err := handler.Handle(t.Context(), fines.BuildQuery("member-1"))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "2.5", result.OutstandingTotal.String())
}
