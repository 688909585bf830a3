package createnotification_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/createnotification"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

func Test_Decide(t *testing.T) {
	now := time.Now()
	existingID := uuid.New()
	existing := func(at time.Time) core.NotificationCreated {
		return core.BuildNotificationCreated(existingID, "member-1", "Request approved", "Dune is yours until Friday", core.NotificationKindApproved, at)
	}

	testCases := []struct {
		name           string
		history        core.DomainEvents
		userID         string
		title          string
		notificationID uuid.UUID
		expectCreated  bool
	}{
		{
			name:           "first notification",
			history:        core.DomainEvents{},
			userID:         "member-1",
			title:          "Request approved",
			notificationID: uuid.New(),
			expectCreated:  true,
		},
		{
			name:           "identical within the window",
			history:        core.DomainEvents{existing(now.Add(-4 * time.Minute))},
			userID:         "member-1",
			title:          "Request approved",
			notificationID: uuid.New(),
		},
		{
			name:           "identical exactly at the window start",
			history:        core.DomainEvents{existing(now.Add(-createnotification.DedupeWindow))},
			userID:         "member-1",
			title:          "Request approved",
			notificationID: uuid.New(),
		},
		{
			name:           "identical but older than the window",
			history:        core.DomainEvents{existing(now.Add(-6 * time.Minute))},
			userID:         "member-1",
			title:          "Request approved",
			notificationID: uuid.New(),
			expectCreated:  true,
		},
		{
			name:           "different title",
			history:        core.DomainEvents{existing(now.Add(-time.Minute))},
			userID:         "member-1",
			title:          "Request rejected",
			notificationID: uuid.New(),
			expectCreated:  true,
		},
		{
			name:           "different user",
			history:        core.DomainEvents{existing(now.Add(-time.Minute))},
			userID:         "member-2",
			title:          "Request approved",
			notificationID: uuid.New(),
			expectCreated:  true,
		},
		{
			name:           "same notification id",
			history:        core.DomainEvents{existing(now.Add(-time.Hour))},
			userID:         "member-1",
			title:          "Request approved",
			notificationID: existingID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := createnotification.BuildCommand(
				tc.notificationID, tc.userID, tc.title, "Dune is yours until Friday", core.NotificationKindApproved, now,
			)

			// act
			result := createnotification.Decide(tc.history, command)

			// assert
			require.NoError(t, result.HasError())
			assert.Equal(t, tc.expectCreated, result.HasEventToAppend())
		})
	}
}
