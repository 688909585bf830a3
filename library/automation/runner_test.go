package automation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/automation"
	"github.com/AntonStoeckl/borrowdesk/library/desk"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

type fixture struct {
	desk   *desk.Desk
	runner *automation.Runner
	now    time.Time
}

func setupRunner(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}

	d, err := desk.New(memoryengine.NewEventStore(), desk.WithClock(func() time.Time { return f.now }))
	require.NoError(t, err)

	f.desk = d
	f.runner = automation.NewRunner(d, automation.WithDueSoonWindow(24*time.Hour))

	return f
}

func givenApprovedLoan(t *testing.T, f *fixture, userID string, requestedDays int) uuid.UUID {
	t.Helper()

	bookID, err := f.desk.AddBook(t.Context(), desk.AddBookInput{
		ISBN:        "isbn-" + userID,
		Title:       "Book of " + userID,
		Authors:     "Someone",
		TotalCopies: 1,
	})
	require.NoError(t, err)

	submitted, err := f.desk.SubmitBorrowRequest(t.Context(), userID, desk.SubmitInput{
		BookID:        uuid.MustParse(bookID),
		RequestedDays: requestedDays,
	})
	require.NoError(t, err)

	requestID := uuid.MustParse(submitted.RequestID)

	_, err = f.desk.DecideBorrowRequest(t.Context(), "admin-1", requestID, core.DecideActionApprove, "")
	require.NoError(t, err)

	return requestID
}

func Test_ParseAction(t *testing.T) {
	for _, name := range []string{"due-date-reminders", "overdue-notifications", "daily-notifications"} {
		action, err := automation.ParseAction(name)
		assert.NoError(t, err)
		assert.Equal(t, automation.Action(name), action)
	}

	_, err := automation.ParseAction("weekly-digest")
	assert.ErrorIs(t, err, automation.ErrUnknownAction)
}

func Test_Runner_UnknownActionFails(t *testing.T) {
	// arrange
	f := setupRunner(t)

	// act
	_, err := f.runner.Run(t.Context(), automation.Action("weekly-digest"))

	// assert
	assert.ErrorIs(t, err, automation.ErrUnknownAction)
}

func Test_Runner_DueDateRemindersOnlyForLoansDueWithinWindow(t *testing.T) {
	// arrange
	f := setupRunner(t)
	givenApprovedLoan(t, f, "member-1", 2)
	givenApprovedLoan(t, f, "member-2", 14)
	f.now = f.now.Add(36 * time.Hour)

	// act
	report, err := f.runner.Run(t.Context(), automation.ActionDueDateReminders)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.DueSoonReminders)

	inbox, err := f.desk.Notifications(t.Context(), "member-1", false)
	require.NoError(t, err)
	assert.Equal(t, core.NotificationKindDueSoon, inbox.Notifications[0].Kind)
	assert.Equal(t, `"Book of member-1" is due on 2024-03-03.`, inbox.Notifications[0].Message)
}

func Test_Runner_RepeatedReminderRunIsDeduplicated(t *testing.T) {
	// arrange
	f := setupRunner(t)
	givenApprovedLoan(t, f, "member-1", 1)
	f.now = f.now.Add(12 * time.Hour)
	_, err := f.runner.Run(t.Context(), automation.ActionDueDateReminders)
	require.NoError(t, err)
	f.now = f.now.Add(time.Minute)

	// act
	report, err := f.runner.Run(t.Context(), automation.ActionDueDateReminders)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, report.DueSoonReminders)
}

func Test_Runner_OverdueNotificationsMarkAndFine(t *testing.T) {
	// arrange
	f := setupRunner(t)
	requestID := givenApprovedLoan(t, f, "member-1", 2)
	givenApprovedLoan(t, f, "member-2", 14)
	f.now = f.now.Add(5 * core.Day)

	// act
	report, err := f.runner.Run(t.Context(), automation.ActionOverdueNotifications)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.MarkedOverdue)
	assert.Equal(t, 1, report.OverdueNotifications)
	assert.Equal(t, 1, report.FinesIssued)
	assert.Equal(t, 0, report.Failures)

	fines, err := f.desk.Fines(t.Context(), "member-1")
	require.NoError(t, err)
	require.Equal(t, 1, fines.Count)
	assert.Equal(t, requestID.String(), fines.Fines[0].RequestID)
	assert.Equal(t, 3, fines.Fines[0].DaysOverdue)
	assert.Equal(t, "300", fines.Fines[0].Amount.String())
}

func Test_Runner_NextDayUpdatesTheUnpaidFine(t *testing.T) {
	// arrange
	f := setupRunner(t)
	givenApprovedLoan(t, f, "member-1", 2)
	f.now = f.now.Add(5 * core.Day)
	_, err := f.runner.Run(t.Context(), automation.ActionOverdueNotifications)
	require.NoError(t, err)

	// act
	sameDay, sameDayErr := f.runner.Run(t.Context(), automation.ActionOverdueNotifications)
	f.now = f.now.Add(core.Day)
	nextDay, nextDayErr := f.runner.Run(t.Context(), automation.ActionOverdueNotifications)

	// assert
	require.NoError(t, sameDayErr)
	assert.Equal(t, 0, sameDay.MarkedOverdue)
	assert.Equal(t, 0, sameDay.FinesIssued)
	assert.Equal(t, 0, sameDay.FinesUpdated)

	require.NoError(t, nextDayErr)
	assert.Equal(t, 0, nextDay.FinesIssued)
	assert.Equal(t, 1, nextDay.FinesUpdated)

	fines, err := f.desk.Fines(t.Context(), "member-1")
	require.NoError(t, err)
	require.Equal(t, 1, fines.Count)
	assert.Equal(t, "400", fines.OutstandingTotal.String())
}

func Test_Runner_DailyRunsBoth(t *testing.T) {
	// arrange
	f := setupRunner(t)
	givenApprovedLoan(t, f, "member-1", 1)
	givenApprovedLoan(t, f, "member-2", 3)
	f.now = f.now.Add(2*core.Day + time.Hour)

	// act
	report, err := f.runner.Run(t.Context(), automation.ActionDailyNotifications)

	// assert
	require.NoError(t, err)
	assert.Equal(t, automation.ActionDailyNotifications, report.Action)
	assert.Equal(t, 1, report.DueSoonReminders)
	assert.Equal(t, 1, report.MarkedOverdue)
	assert.Equal(t, 1, report.FinesIssued)
}

func Test_Runner_ReportCarriesRunID(t *testing.T) {
	// arrange
	f := setupRunner(t)

	// act
	first, firstErr := f.runner.Run(t.Context(), automation.ActionDueDateReminders)
	second, secondErr := f.runner.Run(t.Context(), automation.ActionDueDateReminders)

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
}
