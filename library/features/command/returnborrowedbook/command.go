package returnborrowedbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "ReturnBorrowedBook"
)

// Command represents a member's intent to return a borrowed book.
type Command struct {
	RequestID  uuid.UUID
	UserID     core.UserIDString
	Condition  string
	Notes      string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	requestID uuid.UUID,
	userID core.UserIDString,
	condition string,
	notes string,
	occurredAt time.Time,
) Command {

	return Command{
		RequestID:  requestID,
		UserID:     userID,
		Condition:  condition,
		Notes:      notes,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
