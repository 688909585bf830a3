package upsertfine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	commandType = "UpsertFine"
)

// Command recalculates the fine of one borrow request.
// FineID is only used if a new fine has to be issued.
type Command struct {
	RequestID  uuid.UUID
	FineID     uuid.UUID
	FinePerDay decimal.Decimal
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(requestID uuid.UUID, fineID uuid.UUID, finePerDay decimal.Decimal, occurredAt time.Time) Command {
	return Command{
		RequestID:  requestID,
		FineID:     fineID,
		FinePerDay: finePerDay,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
