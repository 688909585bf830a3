package addbooktocatalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "AddBookToCatalog"
)

// Command represents the intent to register a book in the catalog.
type Command struct {
	BookID      uuid.UUID
	ISBN        string
	Title       string
	Authors     string
	TotalCopies int
	IsFeatured  bool
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	isbn string,
	title string,
	authors string,
	totalCopies int,
	isFeatured bool,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:      bookID,
		ISBN:        isbn,
		Title:       title,
		Authors:     authors,
		TotalCopies: totalCopies,
		IsFeatured:  isFeatured,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
