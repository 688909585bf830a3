package notify

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const dateLayout = "2006-01-02"

var ErrUnknownTransitionKind = errors.New("unknown transition kind")

// Transition describes the state change a notification is about.
// Only the fields relevant for the Kind need to be set.
type Transition struct {
	Kind          core.NotificationKind
	UserID        core.UserIDString
	BookTitle     string
	RequesterID   core.UserIDString
	AdminResponse string
	DueDate       time.Time
	DaysOverdue   int
	Amount        decimal.Decimal
}

// Compose renders the title and message for a transition.
// The rendering is deterministic, so repeated batch runs produce identical notifications.
func Compose(t Transition) (title string, message string, err error) {
	switch t.Kind {
	case core.NotificationKindSubmitted:
		return "Borrow request submitted",
			fmt.Sprintf("Your request for %q was submitted and is waiting for approval.", t.BookTitle), nil

	case core.NotificationKindNewRequest:
		return "New borrow request",
			fmt.Sprintf("User %s requested %q.", t.RequesterID, t.BookTitle), nil

	case core.NotificationKindApproved:
		return "Borrow request approved",
			fmt.Sprintf("Your request for %q was approved. Please return it by %s.", t.BookTitle, t.DueDate.Format(dateLayout)), nil

	case core.NotificationKindRejected:
		message := fmt.Sprintf("Your request for %q was rejected.", t.BookTitle)
		if t.AdminResponse != "" {
			message += " Reason: " + t.AdminResponse
		}

		return "Borrow request rejected", message, nil

	case core.NotificationKindReturned:
		return "Book returned",
			fmt.Sprintf("Thank you for returning %q.", t.BookTitle), nil

	case core.NotificationKindOverdue:
		return "Book overdue",
			fmt.Sprintf("%q was due on %s and is %s overdue.", t.BookTitle, t.DueDate.Format(dateLayout), days(t.DaysOverdue)), nil

	case core.NotificationKindFineIssued:
		return "Fine issued",
			fmt.Sprintf("A fine of %s was issued for %q (%s overdue).", t.Amount.StringFixed(2), t.BookTitle, days(t.DaysOverdue)), nil

	case core.NotificationKindFinePaid:
		return "Fine paid",
			fmt.Sprintf("Your fine of %s was paid.", t.Amount.StringFixed(2)), nil

	case core.NotificationKindDueSoon:
		return "Book due soon",
			fmt.Sprintf("%q is due on %s.", t.BookTitle, t.DueDate.Format(dateLayout)), nil

	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTransitionKind, t.Kind)
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}

	return fmt.Sprintf("%d days", n)
}
