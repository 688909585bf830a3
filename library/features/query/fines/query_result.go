package fines

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// FineInfo is the current state of one fine.
type FineInfo struct {
	FineID      core.FineIDString
	UserID      core.UserIDString
	RequestID   core.RequestIDString
	Amount      decimal.Decimal
	DaysOverdue int
	IssuedAt    time.Time
	UpdatedAt   time.Time
	IsPaid      bool
	PaidDate    *time.Time
}

// Fines represents the query result.
type Fines struct {
	Fines            []FineInfo
	Count            int
	OutstandingTotal decimal.Decimal
	SequenceNumber   uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r Fines) GetSequenceNumber() uint {
	return r.SequenceNumber
}
