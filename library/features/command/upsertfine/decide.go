package upsertfine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

type fine struct {
	fineID      core.FineIDString
	amount      decimal.Decimal
	daysOverdue int
	paid        bool
}

type state struct {
	userID     core.UserIDString
	dueDate    time.Time
	returnedAt time.Time
	fines      []fine
}

func (s state) unpaidFine() (fine, bool) {
	for _, f := range s.fines {
		if !f.paid {
			return f, true
		}
	}

	return fine{}, false
}

func (s state) paidDays() int {
	days := 0

	for _, f := range s.fines {
		if f.paid {
			days += f.daysOverdue
		}
	}

	return days
}

// Decide implements the business logic for fining an overdue borrow request.
//
// Business Rules:
//
//	GIVEN: A borrow request with RequestID that was approved with a due date
//	WHEN: UpsertFine command is received
//	THEN: FineIssued if there is no unpaid fine yet, FineAmountUpdated if the unpaid fine's days or amount changed
//	The overdue days are counted until the return date, or until now if the book is still out,
//	minus the days already covered by paid fines.
//	IDEMPOTENCY: no event if the request was never approved, is not overdue, or the unpaid fine is up to date
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.RequestID.String())

	if s.dueDate.IsZero() {
		return core.IdempotentDecision()
	}

	until := command.OccurredAt
	if !s.returnedAt.IsZero() {
		until = s.returnedAt
	}

	daysOverdue, ok := core.DaysOverdue(s.dueDate, until)
	if !ok {
		return core.IdempotentDecision()
	}

	chargeableDays := daysOverdue - s.paidDays()
	if chargeableDays <= 0 {
		return core.IdempotentDecision()
	}

	amount := core.FineAmount(chargeableDays, command.FinePerDay)

	if unpaid, exists := s.unpaidFine(); exists {
		if unpaid.daysOverdue == chargeableDays && unpaid.amount.Equal(amount) {
			return core.IdempotentDecision()
		}

		return core.SuccessDecision(
			core.BuildFineAmountUpdated(
				unpaid.fineID,
				s.userID,
				command.RequestID,
				amount,
				chargeableDays,
				command.OccurredAt,
			),
		)
	}

	return core.SuccessDecision(
		core.BuildFineIssued(
			command.FineID,
			s.userID,
			command.RequestID,
			amount,
			chargeableDays,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents, requestID core.RequestIDString) state {
	s := state{}

	updateFine := func(fineID core.FineIDString, update func(f *fine)) {
		for i := range s.fines {
			if s.fines[i].fineID == fineID {
				update(&s.fines[i])
			}
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.BorrowRequestSubmitted:
			if e.RequestID == requestID {
				s.userID = e.UserID
			}

		case core.BorrowRequestApproved:
			if e.RequestID == requestID {
				s.dueDate = e.DueDate
			}

		case core.BorrowedBookReturned:
			if e.RequestID == requestID {
				s.returnedAt = e.OccurredAt
			}

		case core.FineIssued:
			if e.RequestID == requestID {
				s.fines = append(s.fines, fine{fineID: e.FineID, amount: e.Amount, daysOverdue: e.DaysOverdue})
			}

		case core.FineAmountUpdated:
			updateFine(e.FineID, func(f *fine) {
				f.amount = e.Amount
				f.daysOverdue = e.DaysOverdue
			})

		case core.FinePaid:
			updateFine(e.FineID, func(f *fine) {
				f.paid = true
			})
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the borrow request's lifecycle and its fines.
func BuildEventFilter(requestID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowRequestSubmittedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowedBookReturnedEventType,
			core.FineIssuedEventType,
			core.FineAmountUpdatedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("RequestID", requestID.String()),
		).
		Finalize()
}
