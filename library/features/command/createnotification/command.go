package createnotification

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "CreateNotification"
)

// Command represents the intent to notify a user.
type Command struct {
	NotificationID uuid.UUID
	UserID         core.UserIDString
	Title          string
	Message        string
	Kind           core.NotificationKind
	OccurredAt     core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	notificationID uuid.UUID,
	userID core.UserIDString,
	title string,
	message string,
	kind core.NotificationKind,
	occurredAt time.Time,
) Command {

	return Command{
		NotificationID: notificationID,
		UserID:         userID,
		Title:          title,
		Message:        message,
		Kind:           kind,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
