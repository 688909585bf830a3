package marknotificationread_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/marknotificationread"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

func Test_Decide(t *testing.T) {
	notificationID := uuid.New()
	now := time.Now()
	created := core.BuildNotificationCreated(notificationID, "member-1", "Due soon", "Dune is due tomorrow", core.NotificationKindDueSoon, now.Add(-time.Hour))
	read := core.BuildNotificationMarkedRead(notificationID, "member-1", now.Add(-time.Minute))

	testCases := []struct {
		description      string
		history          core.DomainEvents
		userID           core.UserIDString
		expectedEvent    string
		expectedErr      error
		expectIdempotent bool
	}{
		{
			description:   "unread notification is marked read",
			history:       core.DomainEvents{created},
			userID:        "member-1",
			expectedEvent: core.NotificationMarkedReadEventType,
		},
		{
			description:      "already read notification is a no-op",
			history:          core.DomainEvents{created, read},
			userID:           "member-1",
			expectIdempotent: true,
		},
		{
			description: "unknown notification is rejected",
			history:     core.DomainEvents{},
			userID:      "member-1",
			expectedErr: core.ErrNotFound,
		},
		{
			description: "notification of another user is rejected",
			history:     core.DomainEvents{created},
			userID:      "member-2",
			expectedErr: core.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := marknotificationread.Decide(tc.history, marknotificationread.BuildCommand(notificationID, tc.userID, now))

			// assert
			assert.Equal(t, tc.expectIdempotent, result.IsIdempotent())

			if tc.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tc.expectedErr)
				assert.False(t, result.HasEventToAppend())

				return
			}

			assert.NoError(t, result.HasError())

			if tc.expectedEvent != "" {
				assert.Equal(t, tc.expectedEvent, result.Event.IsEventType())
			}
		})
	}
}
