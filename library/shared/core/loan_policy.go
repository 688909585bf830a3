package core

import (
	"time"
)

const (
	DefaultLoanDays = 14
	MaxLoanDays     = 60
)

// LoanPolicy bounds the number of days a member can ask to keep a book.
type LoanPolicy struct {
	DefaultDays int
	MaxDays     int
}

func DefaultLoanPolicy() LoanPolicy {
	return LoanPolicy{DefaultDays: DefaultLoanDays, MaxDays: MaxLoanDays}
}

// ResolveRequestedDays applies the default for 0 and reports false if the result is out of range.
func (p LoanPolicy) ResolveRequestedDays(requestedDays int) (int, bool) {
	if requestedDays == 0 {
		requestedDays = p.DefaultDays
	}

	if requestedDays < 1 || requestedDays > p.MaxDays {
		return requestedDays, false
	}

	return requestedDays, true
}

// DueDate is the approval time plus the requested loan period.
func DueDate(approvedAt time.Time, requestedDays int) time.Time {
	return ToOccurredAt(approvedAt.Add(time.Duration(requestedDays) * Day))
}
