package returnborrowedbook

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	failureReasonRequestNotFound = "borrow request not found"
	failureReasonNotTheBorrower  = "you can only return books you borrowed"
	failureReasonNotBorrowed     = "book is not currently borrowed"
)

type state struct {
	requestExists bool
	userID        core.UserIDString
	bookID        core.BookIDString
	status        core.BorrowStatus
}

// Decide implements the business logic for returning a borrowed book.
//
// Business Rules:
//
//	GIVEN: A borrow request with RequestID
//	WHEN: ReturnBorrowedBook command is received from UserID
//	THEN: BorrowedBookReturned event is generated, the request is RETURNED
//	ERROR: "borrow request not found" if no such request was submitted
//	ERROR: "you can only return books you borrowed" if UserID is not the borrower
//	ERROR: "book is not currently borrowed" unless the request is APPROVED or OVERDUE
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.RequestID.String())

	if !s.requestExists {
		return failure(command, failureReasonRequestNotFound, core.ErrNotFound)
	}

	if s.userID != command.UserID {
		return failure(command, failureReasonNotTheBorrower, core.ErrNotPermitted)
	}

	if !s.status.HoldsCopy() {
		return failure(command, failureReasonNotBorrowed, core.ErrRuleViolation)
	}

	return core.SuccessDecision(
		core.BuildBorrowedBookReturned(
			command.RequestID,
			s.userID,
			s.bookID,
			command.Condition,
			command.Notes,
			command.OccurredAt,
		),
	)
}

func failure(command Command, reason string, kind error) core.DecisionResult {
	event := core.BuildReturningBorrowedBookFailed(command.RequestID, command.UserID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.Failure(event.IsEventType(), reason, kind))
}

func project(history core.DomainEvents, requestID core.RequestIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BorrowRequestSubmitted:
			if e.RequestID == requestID {
				s.requestExists = true
				s.userID = e.UserID
				s.bookID = e.BookID
				s.status = core.BorrowStatusPending
			}

		case core.BorrowRequestApproved:
			if e.RequestID == requestID {
				s.status = core.BorrowStatusApproved
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
