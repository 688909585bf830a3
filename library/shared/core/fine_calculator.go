package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Day is the unit fines are charged in.
const Day = 24 * time.Hour

// DefaultFinePerDay is used when FINE_PER_DAY is not configured.
var DefaultFinePerDay = decimal.NewFromInt(100)

// DaysOverdue is the one rule for overdue days: max(1, ceil((now - dueDate) / day)).
// It reports false if the due date has not passed yet, no fine is owed then.
func DaysOverdue(dueDate time.Time, now time.Time) (int, bool) {
	if !dueDate.Before(now) {
		return 0, false
	}

	late := now.Sub(dueDate)
	days := int((late + Day - 1) / Day)

	return max(1, days), true
}

// FineAmount is daysOverdue times the per-day rate.
func FineAmount(daysOverdue int, perDay decimal.Decimal) decimal.Decimal {
	return perDay.Mul(decimal.NewFromInt(int64(daysOverdue)))
}
