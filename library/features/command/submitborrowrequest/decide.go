package submitborrowrequest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	failureReasonBookNotFound          = "book not found"
	failureReasonBookInactive          = "book is not active"
	failureReasonNoCopiesAvailable     = "book is not available"
	failureReasonActiveRequestExists   = "you already have an active request for this book"
	failureReasonRequestedDaysOutRange = "requested days must be between 1 and %d"
	failureReasonRequestIDTaken        = "request id is already used by another borrow request"
)

type request struct {
	userID core.UserIDString
	status core.BorrowStatus
}

// state represents the current state of the book projected from the event history.
type state struct {
	bookExists      bool
	bookIsActive    bool
	totalCopies     int
	requests        map[core.RequestIDString]request
	requestedBefore bool
	requestedBy     core.UserIDString
	requestedBook   core.BookIDString
}

func (s state) availableCopies() int {
	available := s.totalCopies

	for _, r := range s.requests {
		if r.status.HoldsCopy() {
			available--
		}
	}

	return available
}

func (s state) hasActiveRequestOf(userID core.UserIDString) bool {
	for _, r := range s.requests {
		if r.userID == userID && r.status.IsActive() {
			return true
		}
	}

	return false
}

// Decide implements the business logic to determine whether a borrow request can be submitted.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a member with UserID
//	WHEN: SubmitBorrowRequest command is received
//	THEN: BorrowRequestSubmitted event is generated, the request is PENDING
//	ERROR: "book not found" if the book was never added to the catalog
//	ERROR: "book is not active" if the book was deactivated
//	ERROR: "requested days must be between 1 and N" if the loan period is out of range
//	ERROR: "book is not available" if all copies are borrowed
//	ERROR: "you already have an active request for this book" if a PENDING or APPROVED request exists
//	ERROR: "request id is already used by another borrow request" if the RequestID belongs to another member or book
//	IDEMPOTENCY: If this member already submitted this RequestID for this book, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.LoanPolicy) core.DecisionResult {
	s := project(history, command.BookID.String(), command.RequestID.String())

	if s.requestedBefore {
		if s.requestedBy != command.UserID || s.requestedBook != command.BookID.String() {
			return failure(command, failureReasonRequestIDTaken, core.ErrInvalidInput)
		}

		return core.IdempotentDecision()
	}

	if !s.bookExists {
		return failure(command, failureReasonBookNotFound, core.ErrNotFound)
	}

	if !s.bookIsActive {
		return failure(command, failureReasonBookInactive, core.ErrRuleViolation)
	}

	requestedDays, ok := policy.ResolveRequestedDays(command.RequestedDays)
	if !ok {
		return failure(command, fmt.Sprintf(failureReasonRequestedDaysOutRange, policy.MaxDays), core.ErrInvalidInput)
	}

	if s.availableCopies() <= 0 {
		return failure(command, failureReasonNoCopiesAvailable, core.ErrRuleViolation)
	}

	if s.hasActiveRequestOf(command.UserID) {
		return failure(command, failureReasonActiveRequestExists, core.ErrRuleViolation)
	}

	return core.SuccessDecision(
		core.BuildBorrowRequestSubmitted(
			command.RequestID,
			command.UserID,
			command.BookID,
			command.Reason,
			requestedDays,
			command.OccurredAt,
		),
	)
}

func failure(command Command, reason string, kind error) core.DecisionResult {
	event := core.BuildSubmittingBorrowRequestFailed(
		command.RequestID,
		command.UserID,
		command.BookID,
		reason,
		command.OccurredAt,
	)

	return core.ErrorDecision(event, core.Failure(event.IsEventType(), reason, kind))
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, bookID core.BookIDString, requestID core.RequestIDString) state {
	s := state{requests: make(map[core.RequestIDString]request)}

	setStatus := func(id core.RequestIDString, status core.BorrowStatus) {
		if r, ok := s.requests[id]; ok {
			r.status = status
			s.requests[id] = r
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookExists = true
				s.bookIsActive = true
				s.totalCopies = e.TotalCopies
			}

		case core.BookDeactivated:
			if e.BookID == bookID {
				s.bookIsActive = false
			}

		case core.BookReactivated:
			if e.BookID == bookID {
				s.bookIsActive = true
			}

		case core.BorrowRequestSubmitted:
			if e.RequestID == requestID && !s.requestedBefore {
				s.requestedBefore = true
				s.requestedBy = e.UserID
				s.requestedBook = e.BookID
			}

			if e.BookID == bookID {
				s.requests[e.RequestID] = request{userID: e.UserID, status: core.BorrowStatusPending}
			}

		case core.BorrowRequestApproved:
			setStatus(e.RequestID, core.BorrowStatusApproved)

		case core.BorrowRequestRejected:
			setStatus(e.RequestID, core.BorrowStatusRejected)

		case core.BorrowedBookReturned:
			setStatus(e.RequestID, core.BorrowStatusReturned)

		case core.BorrowRequestMarkedOverdue:
			setStatus(e.RequestID, core.BorrowStatusOverdue)
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified book which are relevant for this feature/use-case,
// plus any earlier submission of the same RequestID, whichever book it was for.
func BuildEventFilter(bookID uuid.UUID, requestID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDeactivatedEventType,
			core.BookReactivatedEventType,
			core.BorrowRequestSubmittedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowRequestRejectedEventType,
			core.BorrowedBookReturnedEventType,
			core.BorrowRequestMarkedOverdueEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("BookID", bookID.String()),
		).
		OrMatching().
		AnyEventTypeOf(
			core.BorrowRequestSubmittedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("RequestID", requestID.String()),
		).
		Finalize()
}
