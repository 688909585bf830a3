package createnotification_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/createnotification"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_IdenticalNotificationsAreStoredOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := createnotification.NewCommandHandler(store)
	now := time.Now()

	// act
	first, _ := handler.Handle(t.Context(), createnotification.BuildCommand(
		uuid.New(), "member-1", "Book overdue", "Please return Dune", core.NotificationKindOverdue, now,
	))
	second, _ := handler.Handle(t.Context(), createnotification.BuildCommand(
		uuid.New(), "member-1", "Book overdue", "Please return Dune", core.NotificationKindOverdue, now.Add(time.Minute),
	))

	// assert
	assert.True(t, first.Succeeded())
	assert.True(t, second.Idempotent)
	assert.Len(t, StoredEventsOfType(t, store, core.NotificationCreatedEventType), 1)
}

func Test_CommandHandler_Handle_ConcurrentDuplicatesAreStoredOnce(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	handler := createnotification.NewCommandHandler(store, shell.WithBaseDelay(time.Millisecond), shell.WithMaxAttempts(10))
	now := time.Now()

	var wg sync.WaitGroup

	// act
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = handler.Handle(t.Context(), createnotification.BuildCommand(
				uuid.New(), "member-1", "Book due soon", "Dune is due tomorrow", core.NotificationKindDueSoon, now,
			))
		}()
	}
	wg.Wait()

	// assert
	assert.Len(t, StoredEventsOfType(t, store, core.NotificationCreatedEventType), 1)
}
