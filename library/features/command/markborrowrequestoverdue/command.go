package markborrowrequestoverdue

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "MarkBorrowRequestOverdue"
)

// Command checks one borrow request against the clock.
type Command struct {
	RequestID  uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(requestID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		RequestID:  requestID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
