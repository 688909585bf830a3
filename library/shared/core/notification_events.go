package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationCreatedEventType    = "NotificationCreated"
	NotificationMarkedReadEventType = "NotificationMarkedRead"
)

// NotificationCreated stores an informational message for a user.
type NotificationCreated struct {
	NotificationID NotificationIDString
	UserID         UserIDString
	Title          string
	Message        string
	Kind           NotificationKind
	OccurredAt     OccurredAtTS
}

func BuildNotificationCreated(
	notificationID uuid.UUID,
	userID UserIDString,
	title string,
	message string,
	kind NotificationKind,
	occurredAt time.Time,
) NotificationCreated {

	return NotificationCreated{
		NotificationID: notificationID.String(),
		UserID:         userID,
		Title:          title,
		Message:        message,
		Kind:           kind,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e NotificationCreated) IsEventType() string {
	return NotificationCreatedEventType
}

func (e NotificationCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e NotificationCreated) IsErrorEvent() bool {
	return false
}

type NotificationMarkedRead struct {
	NotificationID NotificationIDString
	UserID         UserIDString
	OccurredAt     OccurredAtTS
}

func BuildNotificationMarkedRead(notificationID uuid.UUID, userID UserIDString, occurredAt time.Time) NotificationMarkedRead {
	return NotificationMarkedRead{
		NotificationID: notificationID.String(),
		UserID:         userID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e NotificationMarkedRead) IsEventType() string {
	return NotificationMarkedReadEventType
}

func (e NotificationMarkedRead) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e NotificationMarkedRead) IsErrorEvent() bool {
	return false
}
