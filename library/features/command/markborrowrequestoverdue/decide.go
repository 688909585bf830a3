package markborrowrequestoverdue

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

type state struct {
	userID  core.UserIDString
	bookID  core.BookIDString
	status  core.BorrowStatus
	dueDate time.Time
}

// Decide implements the business logic to determine whether a borrow request is overdue.
//
// Business Rules:
//
//	GIVEN: A borrow request with RequestID
//	WHEN: MarkBorrowRequestOverdue command is received
//	THEN: BorrowRequestMarkedOverdue event is generated if the request is APPROVED and its due date has passed
//	IDEMPOTENCY: In every other case no event is generated (no-op), including unknown requests
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.RequestID.String())

	if s.status != core.BorrowStatusApproved || !s.dueDate.Before(command.OccurredAt) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBorrowRequestMarkedOverdue(
			command.RequestID,
			s.userID,
			s.bookID,
			s.dueDate,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents, requestID core.RequestIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BorrowRequestSubmitted:
			if e.RequestID == requestID {
				s.userID = e.UserID
				s.bookID = e.BookID
				s.status = core.BorrowStatusPending
			}

		case core.BorrowRequestApproved:
			if e.RequestID == requestID {
				s.status = core.BorrowStatusApproved
				s.dueDate = e.DueDate
			}

		case core.BorrowRequestRejected:
			if e.RequestID == requestID {
				s.status = core.BorrowStatusRejected
			}

		case core.BorrowedBookReturned:
			if e.RequestID == requestID {
				s.status = core.BorrowStatusReturned
			}

		case core.BorrowRequestMarkedOverdue:
			if e.RequestID == requestID {
				s.status = core.BorrowStatusOverdue
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the lifecycle events of one borrow request.
func BuildEventFilter(requestID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowRequestSubmittedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowRequestRejectedEventType,
			core.BorrowedBookReturnedEventType,
			core.BorrowRequestMarkedOverdueEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("RequestID", requestID.String()),
		).
		Finalize()
}
