package addbooktocatalog_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/addbooktocatalog"
)

func Test_CommandHandler_Handle_AddsTheBookOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := addbooktocatalog.NewCommandHandler(store)
	command := addbooktocatalog.BuildCommand(uuid.New(), "978-0441013593", "Dune", "Frank Herbert", 2, false, time.Now())

	// act
	first, firstErr := handler.Handle(t.Context(), command)
	second, secondErr := handler.Handle(t.Context(), command)

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.True(t, first.Succeeded())
	assert.True(t, second.Idempotent)
	assert.Equal(t, 1, store.Len())
}
