package createnotification

import (
	"time"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// DedupeWindow is how long an identical notification suppresses a new one.
const DedupeWindow = 5 * time.Minute

// Decide implements the business logic for creating a notification.
//
// Business Rules:
//
//	GIVEN: A user with UserID
//	WHEN: CreateNotification command is received
//	THEN: NotificationCreated event is generated
//	IDEMPOTENCY: If a notification with the same title and message was created for the user
//	within the last DedupeWindow, or one with this NotificationID exists, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	windowStart := command.OccurredAt.Add(-DedupeWindow)

	for _, event := range history {
		e, ok := event.(core.NotificationCreated)
		if !ok || e.UserID != command.UserID {
			continue
		}

		if e.NotificationID == command.NotificationID.String() {
			return core.IdempotentDecision()
		}

		if e.Title == command.Title && e.Message == command.Message && !e.OccurredAt.Before(windowStart) {
			return core.IdempotentDecision()
		}
	}

	return core.SuccessDecision(
		core.BuildNotificationCreated(
			command.NotificationID,
			command.UserID,
			command.Title,
			command.Message,
			command.Kind,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for the user's notifications of the dedupe window before occurredAt.
func BuildEventFilter(userID core.UserIDString, occurredAt time.Time) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.NotificationCreatedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("UserID", userID),
		).
		OccurredFrom(occurredAt.Add(-DedupeWindow)).
		Finalize()
}
