package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FineIssuedEventType        = "FineIssued"
	FineAmountUpdatedEventType = "FineAmountUpdated"
	FinePaidEventType          = "FinePaid"
	PayingFineFailedEventType  = "PayingFineFailed"
)

// FineIssued creates an unpaid fine for an overdue borrow request. Amount = DaysOverdue × per-day rate.
type FineIssued struct {
	FineID      FineIDString
	UserID      UserIDString
	RequestID   RequestIDString
	Amount      decimal.Decimal
	DaysOverdue int
	OccurredAt  OccurredAtTS
}

func BuildFineIssued(
	fineID uuid.UUID,
	userID UserIDString,
	requestID uuid.UUID,
	amount decimal.Decimal,
	daysOverdue int,
	occurredAt time.Time,
) FineIssued {

	return FineIssued{
		FineID:      fineID.String(),
		UserID:      userID,
		RequestID:   requestID.String(),
		Amount:      amount,
		DaysOverdue: daysOverdue,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FineIssued) IsEventType() string {
	return FineIssuedEventType
}

func (e FineIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FineIssued) IsErrorEvent() bool {
	return false
}

// FineAmountUpdated replaces amount and days of an unpaid fine in place.
type FineAmountUpdated struct {
	FineID      FineIDString
	UserID      UserIDString
	RequestID   RequestIDString
	Amount      decimal.Decimal
	DaysOverdue int
	OccurredAt  OccurredAtTS
}

func BuildFineAmountUpdated(
	fineID FineIDString,
	userID UserIDString,
	requestID uuid.UUID,
	amount decimal.Decimal,
	daysOverdue int,
	occurredAt time.Time,
) FineAmountUpdated {

	return FineAmountUpdated{
		FineID:      fineID,
		UserID:      userID,
		RequestID:   requestID.String(),
		Amount:      amount,
		DaysOverdue: daysOverdue,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FineAmountUpdated) IsEventType() string {
	return FineAmountUpdatedEventType
}

func (e FineAmountUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FineAmountUpdated) IsErrorEvent() bool {
	return false
}

// FinePaid settles a fine, OccurredAt is the paid date.
type FinePaid struct {
	FineID     FineIDString
	UserID     UserIDString
	RequestID  RequestIDString
	Amount     decimal.Decimal
	OccurredAt OccurredAtTS
}

func BuildFinePaid(
	fineID uuid.UUID,
	userID UserIDString,
	requestID RequestIDString,
	amount decimal.Decimal,
	occurredAt time.Time,
) FinePaid {

	return FinePaid{
		FineID:     fineID.String(),
		UserID:     userID,
		RequestID:  requestID,
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e FinePaid) IsEventType() string {
	return FinePaidEventType
}

func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FinePaid) IsErrorEvent() bool {
	return false
}

type PayingFineFailed struct {
	FineID      FineIDString
	UserID      UserIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

func BuildPayingFineFailed(fineID uuid.UUID, userID UserIDString, failureInfo string, occurredAt time.Time) PayingFineFailed {
	return PayingFineFailed{
		FineID:      fineID.String(),
		UserID:      userID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e PayingFineFailed) IsEventType() string {
	return PayingFineFailedEventType
}

func (e PayingFineFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e PayingFineFailed) IsErrorEvent() bool {
	return true
}
