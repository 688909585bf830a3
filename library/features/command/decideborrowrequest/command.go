package decideborrowrequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "DecideBorrowRequest"
)

// Command represents an admin's decision on a borrow request.
type Command struct {
	RequestID     uuid.UUID
	AdminID       core.UserIDString
	Action        core.DecideAction
	AdminResponse string
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	requestID uuid.UUID,
	adminID core.UserIDString,
	action core.DecideAction,
	adminResponse string,
	occurredAt time.Time,
) Command {

	return Command{
		RequestID:     requestID,
		AdminID:       adminID,
		Action:        action,
		AdminResponse: adminResponse,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
