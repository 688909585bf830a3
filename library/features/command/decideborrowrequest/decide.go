package decideborrowrequest

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	failureReasonRequestNotFound   = "borrow request not found"
	failureReasonInvalidAction     = "action must be APPROVE or REJECT"
	failureReasonRequestNotPending = "borrow request is not pending"
	failureReasonNoLongerAvailable = "book is no longer available"
)

// state represents the request and its book, projected from the event history.
type state struct {
	requestExists   bool
	userID          core.UserIDString
	bookID          core.BookIDString
	requestedDays   int
	status          core.BorrowStatus
	totalCopies     int
	copiesBorrowed  int
	borrowingStatus map[core.RequestIDString]core.BorrowStatus
}

// Decide implements the business logic for approving or rejecting a borrow request.
//
// Business Rules:
//
//	GIVEN: A borrow request with RequestID
//	WHEN: DecideBorrowRequest command is received
//	THEN: BorrowRequestApproved with DueDate = now + requested days, or BorrowRequestRejected
//	ERROR: "borrow request not found" if no such request was submitted
//	ERROR: "action must be APPROVE or REJECT" for any other action
//	ERROR: "borrow request is not pending" if it was decided before
//	ERROR: "book is no longer available" when approving while all copies are borrowed
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.RequestID.String())

	if !s.requestExists {
		return failure(command, failureReasonRequestNotFound, core.ErrNotFound)
	}

	if !command.Action.IsValid() {
		return failure(command, failureReasonInvalidAction, core.ErrInvalidInput)
	}

	if s.status != core.BorrowStatusPending {
		return failure(command, failureReasonRequestNotPending, core.ErrRuleViolation)
	}

	if command.Action == core.DecideActionReject {
		return core.SuccessDecision(
			core.BuildBorrowRequestRejected(
				command.RequestID,
				s.userID,
				s.bookID,
				command.AdminID,
				command.AdminResponse,
				command.OccurredAt,
			),
		)
	}

	if s.totalCopies-s.copiesBorrowed <= 0 {
		return failure(command, failureReasonNoLongerAvailable, core.ErrRuleViolation)
	}

	return core.SuccessDecision(
		core.BuildBorrowRequestApproved(
			command.RequestID,
			s.userID,
			s.bookID,
			command.AdminID,
			command.AdminResponse,
			core.DueDate(command.OccurredAt, s.requestedDays),
			command.OccurredAt,
		),
	)
}

func failure(command Command, reason string, kind error) core.DecisionResult {
	event := core.BuildDecidingBorrowRequestFailed(command.RequestID, command.AdminID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.Failure(event.IsEventType(), reason, kind))
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, requestID core.RequestIDString) state {
	s := state{borrowingStatus: make(map[core.RequestIDString]core.BorrowStatus)}

	transition := func(id core.RequestIDString, status core.BorrowStatus) {
		if id == requestID {
			s.status = status
		}

		if s.borrowingStatus[id].HoldsCopy() {
			s.copiesBorrowed--
		}

		s.borrowingStatus[id] = status

		if status.HoldsCopy() {
			s.copiesBorrowed++
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			s.totalCopies = e.TotalCopies

		case core.BorrowRequestSubmitted:
			if e.RequestID == requestID {
				s.requestExists = true
				s.userID = e.UserID
				s.bookID = e.BookID
				s.requestedDays = e.RequestedDays
			}

			transition(e.RequestID, core.BorrowStatusPending)

		case core.BorrowRequestApproved:
			transition(e.RequestID, core.BorrowStatusApproved)

		case core.BorrowRequestRejected:
			transition(e.RequestID, core.BorrowStatusRejected)

		case core.BorrowedBookReturned:
			transition(e.RequestID, core.BorrowStatusReturned)

		case core.BorrowRequestMarkedOverdue:
			transition(e.RequestID, core.BorrowStatusOverdue)
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events related to the request and its book.
// If the request is unknown, bookID is empty and only the request's own events are matched.
func BuildEventFilter(requestID uuid.UUID, bookID core.BookIDString) eventstore.Filter {
	requestEvents := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowRequestSubmittedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowRequestRejectedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("RequestID", requestID.String()),
		)

	if bookID == "" {
		return requestEvents.Finalize()
	}

	return requestEvents.
		OrMatching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BorrowRequestSubmittedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowRequestRejectedEventType,
			core.BorrowedBookReturnedEventType,
			core.BorrowRequestMarkedOverdueEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("BookID", bookID),
		).
		Finalize()
}
