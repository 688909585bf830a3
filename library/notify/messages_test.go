package notify_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/library/notify"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

func Test_Compose(t *testing.T) {
	due := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		description     string
		transition      notify.Transition
		expectedTitle   string
		expectedMessage string
	}{
		{
			description:     "approved",
			transition:      notify.Transition{Kind: core.NotificationKindApproved, BookTitle: "Dune", DueDate: due},
			expectedTitle:   "Borrow request approved",
			expectedMessage: `Your request for "Dune" was approved. Please return it by 2024-01-01.`,
		},
		{
			description:     "rejected with admin response",
			transition:      notify.Transition{Kind: core.NotificationKindRejected, BookTitle: "Dune", AdminResponse: "Reserved for class"},
			expectedTitle:   "Borrow request rejected",
			expectedMessage: `Your request for "Dune" was rejected. Reason: Reserved for class`,
		},
		{
			description:     "overdue by one day",
			transition:      notify.Transition{Kind: core.NotificationKindOverdue, BookTitle: "Dune", DueDate: due, DaysOverdue: 1},
			expectedTitle:   "Book overdue",
			expectedMessage: `"Dune" was due on 2024-01-01 and is 1 day overdue.`,
		},
		{
			description:     "fine issued",
			transition:      notify.Transition{Kind: core.NotificationKindFineIssued, BookTitle: "Dune", DaysOverdue: 5, Amount: decimal.NewFromInt(500)},
			expectedTitle:   "Fine issued",
			expectedMessage: `A fine of 500.00 was issued for "Dune" (5 days overdue).`,
		},
		{
			description:     "new request for admins",
			transition:      notify.Transition{Kind: core.NotificationKindNewRequest, BookTitle: "Dune", RequesterID: "member-1"},
			expectedTitle:   "New borrow request",
			expectedMessage: `User member-1 requested "Dune".`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			title, message, err := notify.Compose(tc.transition)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTitle, title)
			assert.Equal(t, tc.expectedMessage, message)
		})
	}
}

func Test_Compose_UnknownKind(t *testing.T) {
	// act
	_, _, err := notify.Compose(notify.Transition{Kind: "BIRTHDAY"})

	// assert
	assert.ErrorIs(t, err, notify.ErrUnknownTransitionKind)
}
