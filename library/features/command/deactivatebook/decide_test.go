package deactivatebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/deactivatebook"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

func Test_Decide(t *testing.T) {
	bookID := uuid.New()
	now := time.Now()
	added := core.BuildBookAddedToCatalog(bookID, "isbn", "Dune", "Frank Herbert", 1, false, now.Add(-2*time.Hour))
	deactivated := core.BuildBookDeactivated(bookID, now.Add(-time.Hour))

	testCases := []struct {
		name          string
		history       core.DomainEvents
		command       deactivatebook.Command
		expectedEvent string
		expectedErr   error
	}{
		{
			name:          "deactivate an active book",
			history:       core.DomainEvents{added},
			command:       deactivatebook.BuildDeactivateCommand(bookID, now),
			expectedEvent: core.BookDeactivatedEventType,
		},
		{
			name:    "deactivate an inactive book is idempotent",
			history: core.DomainEvents{added, deactivated},
			command: deactivatebook.BuildDeactivateCommand(bookID, now),
		},
		{
			name:          "reactivate an inactive book",
			history:       core.DomainEvents{added, deactivated},
			command:       deactivatebook.BuildReactivateCommand(bookID, now),
			expectedEvent: core.BookReactivatedEventType,
		},
		{
			name:    "reactivate an active book is idempotent",
			history: core.DomainEvents{added},
			command: deactivatebook.BuildReactivateCommand(bookID, now),
		},
		{
			name:          "unknown book",
			history:       core.DomainEvents{},
			command:       deactivatebook.BuildDeactivateCommand(bookID, now),
			expectedEvent: core.ChangingCatalogFailedEventType,
			expectedErr:   core.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := deactivatebook.Decide(tc.history, tc.command)

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			} else {
				assert.NoError(t, result.HasError())
			}

			if tc.expectedEvent == "" {
				assert.False(t, result.HasEventToAppend())
				return
			}

			assert.Equal(t, tc.expectedEvent, result.Event.IsEventType())
		})
	}
}
