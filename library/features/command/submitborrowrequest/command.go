package submitborrowrequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "SubmitBorrowRequest"
)

// Command represents a member's intent to borrow a book. RequestedDays 0 means the policy's default.
type Command struct {
	RequestID     uuid.UUID
	UserID        core.UserIDString
	BookID        uuid.UUID
	Reason        string
	RequestedDays int
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	requestID uuid.UUID,
	userID core.UserIDString,
	bookID uuid.UUID,
	reason string,
	requestedDays int,
	occurredAt time.Time,
) Command {

	return Command{
		RequestID:     requestID,
		UserID:        userID,
		BookID:        bookID,
		Reason:        reason,
		RequestedDays: requestedDays,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
