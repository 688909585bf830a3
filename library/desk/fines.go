package desk

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/payfine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/upsertfine"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/borrowrequests"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/fines"
	"github.com/AntonStoeckl/borrowdesk/library/notify"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// FineOutcome is the state of a fine right after a command. FineID is empty if no fine was touched.
type FineOutcome struct {
	FineID      core.FineIDString
	RequestID   core.RequestIDString
	Amount      decimal.Decimal
	DaysOverdue int
	Issued      bool
	Updated     bool
	Paid        bool
}

// UpsertFine issues or updates the fine of an overdue request.
// A newly issued fine is written to the audit log and the member is notified.
func (d *Desk) UpsertFine(ctx context.Context, requestID uuid.UUID) (FineOutcome, error) {
	return d.upsertFineFor(ctx, requestID, "")
}

func (d *Desk) upsertFineFor(ctx context.Context, requestID uuid.UUID, bookTitle string) (FineOutcome, error) {
	command := upsertfine.BuildCommand(requestID, uuid.Must(uuid.NewV7()), d.finePerDay, d.now())

	result, err := d.upsertFine.Handle(ctx, command)
	if err != nil {
		return FineOutcome{RequestID: requestID.String()}, err
	}

	switch e := result.Event.(type) {
	case core.FineIssued:
		d.logger.InfoContext(ctx, "fine issued",
			"audit", true,
			"fine_id", e.FineID,
			"user_id", e.UserID,
			"request_id", e.RequestID,
			"amount", e.Amount.String(),
			"days_overdue", e.DaysOverdue,
		)

		if bookTitle == "" {
			bookTitle = d.bookTitleOfRequest(ctx, e.RequestID)
		}

		d.trigger.Dispatch(ctx, notify.Transition{
			Kind:        core.NotificationKindFineIssued,
			UserID:      e.UserID,
			BookTitle:   bookTitle,
			DaysOverdue: e.DaysOverdue,
			Amount:      e.Amount,
		})

		return FineOutcome{
			FineID:      e.FineID,
			RequestID:   e.RequestID,
			Amount:      e.Amount,
			DaysOverdue: e.DaysOverdue,
			Issued:      true,
		}, nil

	case core.FineAmountUpdated:
		return FineOutcome{
			FineID:      e.FineID,
			RequestID:   e.RequestID,
			Amount:      e.Amount,
			DaysOverdue: e.DaysOverdue,
			Updated:     true,
		}, nil

	default:
		return FineOutcome{RequestID: requestID.String()}, nil
	}
}

// PayFine marks the member's fine as paid and notifies them.
func (d *Desk) PayFine(ctx context.Context, userID core.UserIDString, fineID uuid.UUID) (FineOutcome, error) {
	result, err := d.payFine.Handle(ctx, payfine.BuildCommand(fineID, userID, d.now()))
	if err != nil {
		return FineOutcome{FineID: fineID.String()}, err
	}

	e, ok := result.Event.(core.FinePaid)
	if !ok {
		return FineOutcome{FineID: fineID.String()}, nil
	}

	d.trigger.Dispatch(ctx, notify.Transition{
		Kind:   core.NotificationKindFinePaid,
		UserID: userID,
		Amount: e.Amount,
	})

	return FineOutcome{
		FineID:    e.FineID,
		RequestID: e.RequestID,
		Amount:    e.Amount,
		Paid:      true,
	}, nil
}

// Fines lists the fines of a user, or of all users for an empty userID.
func (d *Desk) Fines(ctx context.Context, userID core.UserIDString) (fines.Fines, error) {
	return d.fines.Handle(ctx, fines.BuildQuery(userID))
}

func (d *Desk) bookTitleOfRequest(ctx context.Context, requestID core.RequestIDString) string {
	requests, err := d.borrowRequests.Handle(ctx, borrowrequests.BuildRequestQuery(requestID))
	if err != nil {
		d.logger.WarnContext(ctx, "looking up borrow request failed", "request_id", requestID, "error", err)

		return ""
	}

	if requests.Count == 0 {
		return ""
	}

	return d.bookTitle(ctx, requests.Requests[0].BookID)
}
