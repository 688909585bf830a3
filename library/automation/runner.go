package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/desk"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/borrowrequests"
	"github.com/AntonStoeckl/borrowdesk/library/notify"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

// Action names one automated run.
type Action string

const (
	ActionDueDateReminders     Action = "due-date-reminders"
	ActionOverdueNotifications Action = "overdue-notifications"
	ActionDailyNotifications   Action = "daily-notifications"
)

// DefaultDueSoonWindow is how far ahead due-date reminders look.
const DefaultDueSoonWindow = 24 * time.Hour

var ErrUnknownAction = errors.New("unknown automation action")

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionDueDateReminders, ActionOverdueNotifications, ActionDailyNotifications:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Desk is the part of the borrow desk the runner drives.
type Desk interface {
	BorrowRequests(ctx context.Context, query borrowrequests.Query) (borrowrequests.BorrowRequests, error)
	MarkOverdue(ctx context.Context) ([]desk.OverdueRequest, error)
	UpsertFine(ctx context.Context, requestID uuid.UUID) (desk.FineOutcome, error)
	Notify(ctx context.Context, transition notify.Transition) bool
	BookTitle(ctx context.Context, bookID core.BookIDString) string
	Now() time.Time
}

// Report counts what one run did.
type Report struct {
	Action               Action `json:"action"`
	RunID                string `json:"runId"`
	DueSoonReminders     int    `json:"dueSoonReminders"`
	MarkedOverdue        int    `json:"markedOverdue"`
	OverdueNotifications int    `json:"overdueNotifications"`
	FinesIssued          int    `json:"finesIssued"`
	FinesUpdated         int    `json:"finesUpdated"`
	Failures             int    `json:"failures"`
}

// Runner executes automated actions against a Desk.
type Runner struct {
	desk          Desk
	dueSoonWindow time.Duration
	logger        *slog.Logger
}

type Option func(*Runner)

func WithDueSoonWindow(window time.Duration) Option {
	return func(r *Runner) {
		if window > 0 {
			r.dueSoonWindow = window
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(d Desk, options ...Option) *Runner {
	r := &Runner{
		desk:          d,
		dueSoonWindow: DefaultDueSoonWindow,
		logger:        slog.Default(),
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Run executes the action. Failures of single requests do not stop the run,
// they are counted in the Report and returned joined.
func (r *Runner) Run(ctx context.Context, action Action) (Report, error) {
	runID := uuid.New()
	ctx = shell.WithCorrelationID(ctx, runID)
	report := Report{Action: action, RunID: runID.String()}

	var err error

	switch action {
	case ActionDueDateReminders:
		err = r.dueDateReminders(ctx, &report)

	case ActionOverdueNotifications:
		err = r.overdueNotifications(ctx, &report)

	case ActionDailyNotifications:
		err = errors.Join(
			r.dueDateReminders(ctx, &report),
			r.overdueNotifications(ctx, &report),
		)

	default:
		return report, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}

	r.logger.Log(ctx, level, "automation run finished",
		"action", string(action),
		"run_id", report.RunID,
		"due_soon_reminders", report.DueSoonReminders,
		"marked_overdue", report.MarkedOverdue,
		"overdue_notifications", report.OverdueNotifications,
		"fines_issued", report.FinesIssued,
		"fines_updated", report.FinesUpdated,
		"failures", report.Failures,
		"error", err,
	)

	return report, err
}

func (r *Runner) dueDateReminders(ctx context.Context, report *Report) error {
	approved, err := r.desk.BorrowRequests(ctx, borrowrequests.BuildQuery("", core.BorrowStatusApproved))
	if err != nil {
		report.Failures++

		return err
	}

	now := r.desk.Now()
	horizon := now.Add(r.dueSoonWindow)

	for _, request := range approved.Requests {
		if request.DueDate == nil || !request.DueDate.After(now) || request.DueDate.After(horizon) {
			continue
		}

		stored := r.desk.Notify(ctx, notify.Transition{
			Kind:      core.NotificationKindDueSoon,
			UserID:    request.UserID,
			BookTitle: r.desk.BookTitle(ctx, request.BookID),
			DueDate:   *request.DueDate,
		})

		if stored {
			report.DueSoonReminders++
		}
	}

	return nil
}

func (r *Runner) overdueNotifications(ctx context.Context, report *Report) error {
	var errs []error

	marked, err := r.desk.MarkOverdue(ctx)
	if err != nil {
		report.Failures += countErrors(err)
		errs = append(errs, err)
	}

	report.MarkedOverdue += len(marked)
	now := r.desk.Now()

	for _, request := range marked {
		daysOverdue, _ := core.DaysOverdue(request.DueDate, now)

		stored := r.desk.Notify(ctx, notify.Transition{
			Kind:        core.NotificationKindOverdue,
			UserID:      request.UserID,
			BookTitle:   r.desk.BookTitle(ctx, request.BookID),
			DueDate:     request.DueDate,
			DaysOverdue: daysOverdue,
		})

		if stored {
			report.OverdueNotifications++
		}
	}

	// Requests marked a moment ago must be fined in this run, a replica might not have them yet.
	overdue, err := r.desk.BorrowRequests(
		eventstore.WithStrongConsistency(ctx),
		borrowrequests.BuildQuery("", core.BorrowStatusOverdue),
	)
	if err != nil {
		report.Failures++

		return errors.Join(append(errs, err)...)
	}

	for _, request := range overdue.Requests {
		requestID, parseErr := uuid.Parse(request.RequestID)
		if parseErr != nil {
			report.Failures++
			errs = append(errs, parseErr)

			continue
		}

		outcome, fineErr := r.desk.UpsertFine(ctx, requestID)
		if fineErr != nil {
			report.Failures++
			errs = append(errs, fmt.Errorf("request %s: %w", request.RequestID, fineErr))

			continue
		}

		switch {
		case outcome.Issued:
			report.FinesIssued++
		case outcome.Updated:
			report.FinesUpdated++
		}
	}

	return errors.Join(errs...)
}

// countErrors counts each error of an errors.Join result as one failure.
func countErrors(err error) int {
	if err == nil {
		return 0
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}

	return 1
}
