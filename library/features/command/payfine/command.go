package payfine

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "PayFine"
)

// Command represents a member's intent to pay a fine.
type Command struct {
	FineID     uuid.UUID
	UserID     core.UserIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, userID core.UserIDString, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		UserID:     userID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
