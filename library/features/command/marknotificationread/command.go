package marknotificationread

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "MarkNotificationRead"
)

// Command represents a user's intent to mark a notification as read.
type Command struct {
	NotificationID uuid.UUID
	UserID         core.UserIDString
	OccurredAt     core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(notificationID uuid.UUID, userID core.UserIDString, occurredAt time.Time) Command {
	return Command{
		NotificationID: notificationID,
		UserID:         userID,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
