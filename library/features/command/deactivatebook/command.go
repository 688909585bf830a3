package deactivatebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "ChangeBookActivation"
)

// Command deactivates the book, or reactivates it if Reactivate is set.
type Command struct {
	BookID     uuid.UUID
	Reactivate bool
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildDeactivateCommand creates a Command that takes the book out of the catalog.
func BuildDeactivateCommand(bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// BuildReactivateCommand creates a Command that puts the book back into the catalog.
func BuildReactivateCommand(bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Reactivate: true,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
