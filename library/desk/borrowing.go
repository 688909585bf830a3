package desk

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/decideborrowrequest"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/markborrowrequestoverdue"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/returnborrowedbook"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/submitborrowrequest"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/borrowrequests"
	"github.com/AntonStoeckl/borrowdesk/library/notify"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// BorrowRequestOutcome is the state of a borrow request right after a command.
type BorrowRequestOutcome struct {
	RequestID  core.RequestIDString
	Status     core.BorrowStatus
	DueDate    *time.Time
	ReturnDate *time.Time
	Idempotent bool
}

// SubmitInput is a member's borrow request. A zero RequestID gets a new ID,
// a client-chosen RequestID makes retries idempotent. Zero RequestedDays means the default loan period.
type SubmitInput struct {
	RequestID     uuid.UUID
	BookID        uuid.UUID
	Reason        string
	RequestedDays int
}

// OverdueRequest is a request that was just marked OVERDUE.
type OverdueRequest struct {
	RequestID core.RequestIDString
	UserID    core.UserIDString
	BookID    core.BookIDString
	DueDate   time.Time
}

// SubmitBorrowRequest creates a PENDING request and notifies the member and the admins.
func (d *Desk) SubmitBorrowRequest(ctx context.Context, userID core.UserIDString, input SubmitInput) (BorrowRequestOutcome, error) {
	requestID := input.RequestID
	if requestID == uuid.Nil {
		requestID = uuid.Must(uuid.NewV7())
	}

	command := submitborrowrequest.BuildCommand(requestID, userID, input.BookID, input.Reason, input.RequestedDays, d.now())

	result, err := d.submit.Handle(ctx, command)
	if err != nil {
		return BorrowRequestOutcome{RequestID: requestID.String()}, err
	}

	outcome := BorrowRequestOutcome{
		RequestID:  requestID.String(),
		Status:     core.BorrowStatusPending,
		Idempotent: result.Idempotent,
	}

	if !result.Succeeded() {
		return outcome, nil
	}

	bookTitle := d.bookTitle(ctx, input.BookID.String())

	transitions := []notify.Transition{{
		Kind:      core.NotificationKindSubmitted,
		UserID:    userID,
		BookTitle: bookTitle,
	}}

	for _, adminID := range d.adminUserIDs {
		transitions = append(transitions, notify.Transition{
			Kind:        core.NotificationKindNewRequest,
			UserID:      adminID,
			BookTitle:   bookTitle,
			RequesterID: userID,
		})
	}

	d.trigger.DispatchAll(ctx, transitions...)

	return outcome, nil
}

// DecideBorrowRequest approves or rejects a PENDING request and notifies the member.
func (d *Desk) DecideBorrowRequest(
	ctx context.Context,
	adminID core.UserIDString,
	requestID uuid.UUID,
	action core.DecideAction,
	adminResponse string,
) (BorrowRequestOutcome, error) {

	command := decideborrowrequest.BuildCommand(requestID, adminID, action, adminResponse, d.now())

	result, err := d.decide.Handle(ctx, command)
	if err != nil {
		return BorrowRequestOutcome{RequestID: requestID.String()}, err
	}

	outcome := BorrowRequestOutcome{RequestID: requestID.String(), Idempotent: result.Idempotent}

	switch e := result.Event.(type) {
	case core.BorrowRequestApproved:
		dueDate := e.DueDate
		outcome.Status = core.BorrowStatusApproved
		outcome.DueDate = &dueDate

		d.trigger.Dispatch(ctx, notify.Transition{
			Kind:      core.NotificationKindApproved,
			UserID:    e.UserID,
			BookTitle: d.bookTitle(ctx, e.BookID),
			DueDate:   e.DueDate,
		})

	case core.BorrowRequestRejected:
		outcome.Status = core.BorrowStatusRejected

		d.trigger.Dispatch(ctx, notify.Transition{
			Kind:          core.NotificationKindRejected,
			UserID:        e.UserID,
			BookTitle:     d.bookTitle(ctx, e.BookID),
			AdminResponse: e.AdminResponse,
		})
	}

	return outcome, nil
}

// ReturnBorrowedBook closes an APPROVED or OVERDUE request of the member, notifies them
// and settles the fine for the days the book was late.
func (d *Desk) ReturnBorrowedBook(
	ctx context.Context,
	userID core.UserIDString,
	requestID uuid.UUID,
	condition string,
	notes string,
) (BorrowRequestOutcome, error) {

	command := returnborrowedbook.BuildCommand(requestID, userID, condition, notes, d.now())

	result, err := d.returnBook.Handle(ctx, command)
	if err != nil {
		return BorrowRequestOutcome{RequestID: requestID.String()}, err
	}

	outcome := BorrowRequestOutcome{RequestID: requestID.String(), Idempotent: result.Idempotent}

	e, ok := result.Event.(core.BorrowedBookReturned)
	if !ok {
		return outcome, nil
	}

	returnDate := e.OccurredAt
	outcome.Status = core.BorrowStatusReturned
	outcome.ReturnDate = &returnDate

	bookTitle := d.bookTitle(ctx, e.BookID)

	d.trigger.Dispatch(ctx, notify.Transition{
		Kind:      core.NotificationKindReturned,
		UserID:    userID,
		BookTitle: bookTitle,
	})

	if _, fineErr := d.upsertFineFor(ctx, requestID, bookTitle); fineErr != nil {
		d.logger.ErrorContext(ctx, "settling fine after return failed",
			"request_id", requestID.String(), "error", fineErr)
	}

	return outcome, nil
}

// MarkOverdue moves every APPROVED request whose due date has passed to OVERDUE.
// It continues after individual failures and returns them joined, together with the requests it did mark.
// The APPROVED list is read from the primary so that no request slips past a lagging replica.
func (d *Desk) MarkOverdue(ctx context.Context) ([]OverdueRequest, error) {
	approved, err := d.borrowRequests.Handle(
		eventstore.WithStrongConsistency(ctx),
		borrowrequests.BuildQuery("", core.BorrowStatusApproved),
	)
	if err != nil {
		return nil, err
	}

	now := d.now()

	var (
		marked []OverdueRequest
		errs   []error
	)

	for _, request := range approved.Requests {
		if request.DueDate == nil || !request.DueDate.Before(now) {
			continue
		}

		requestID, parseErr := uuid.Parse(request.RequestID)
		if parseErr != nil {
			errs = append(errs, parseErr)

			continue
		}

		result, handleErr := d.markOverdue.Handle(ctx, markborrowrequestoverdue.BuildCommand(requestID, now))
		if handleErr != nil {
			errs = append(errs, handleErr)

			continue
		}

		if result.Succeeded() {
			marked = append(marked, OverdueRequest{
				RequestID: request.RequestID,
				UserID:    request.UserID,
				BookID:    request.BookID,
				DueDate:   *request.DueDate,
			})
		}
	}

	return marked, errors.Join(errs...)
}

// BorrowRequests lists borrow requests.
func (d *Desk) BorrowRequests(ctx context.Context, query borrowrequests.Query) (borrowrequests.BorrowRequests, error) {
	return d.borrowRequests.Handle(ctx, query)
}
