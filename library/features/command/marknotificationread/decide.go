package marknotificationread

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// ErrNotificationNotFound is returned for unknown notifications and notifications of other users.
// Marking as read records no failure event.
var ErrNotificationNotFound = core.Failure(core.NotificationMarkedReadEventType, "notification not found", core.ErrNotFound)

// Decide implements the business logic for marking a notification as read.
//
// Business Rules:
//
//	GIVEN: A notification with NotificationID
//	WHEN: MarkNotificationRead command is received from UserID
//	THEN: NotificationMarkedRead event is generated
//	ERROR: "notification not found" if there is no such notification for this user
//	IDEMPOTENCY: If it was already read, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	notificationID := command.NotificationID.String()
	exists, read := false, false

	for _, event := range history {
		switch e := event.(type) {
		case core.NotificationCreated:
			if e.NotificationID == notificationID && e.UserID == command.UserID {
				exists = true
			}

		case core.NotificationMarkedRead:
			if e.NotificationID == notificationID {
				read = true
			}
		}
	}

	if !exists {
		return core.RejectedDecision(ErrNotificationNotFound)
	}

	if read {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildNotificationMarkedRead(command.NotificationID, command.UserID, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for querying all events of one notification.
func BuildEventFilter(notificationID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.NotificationCreatedEventType,
			core.NotificationMarkedReadEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("NotificationID", notificationID.String()),
		).
		Finalize()
}
