package borrowrequests

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// Project folds the borrow request lifecycle events into the current state of each request.
//
// Query Logic:
//
//	GIVEN: All borrow request lifecycle events (of one user, if the query has a UserID)
//	WHEN: BorrowRequests query is executed
//	THEN: BorrowRequests struct is returned, oldest request first
//	INCLUDES: Requests in the queried Status, or all requests if Status is empty
func Project(history core.DomainEvents, query Query, maxSequence uint) BorrowRequests {
	requests := make(map[string]*BorrowRequestInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.BorrowRequestSubmitted:
			requests[e.RequestID] = &BorrowRequestInfo{
				RequestID:     e.RequestID,
				UserID:        e.UserID,
				BookID:        e.BookID,
				Status:        core.BorrowStatusPending,
				Reason:        e.Reason,
				RequestedDays: e.RequestedDays,
				RequestDate:   e.OccurredAt,
			}

		case core.BorrowRequestApproved:
			if r, ok := requests[e.RequestID]; ok {
				approvedDate, dueDate := e.OccurredAt, e.DueDate
				r.Status = core.BorrowStatusApproved
				r.ApprovedDate = &approvedDate
				r.DueDate = &dueDate
				r.AdminID = e.AdminID
				r.AdminResponse = e.AdminResponse
			}

		case core.BorrowRequestRejected:
			if r, ok := requests[e.RequestID]; ok {
				r.Status = core.BorrowStatusRejected
				r.AdminID = e.AdminID
				r.AdminResponse = e.AdminResponse
			}

		case core.BorrowRequestMarkedOverdue:
			if r, ok := requests[e.RequestID]; ok {
				r.Status = core.BorrowStatusOverdue
			}

		case core.BorrowedBookReturned:
			if r, ok := requests[e.RequestID]; ok {
				returnDate := e.OccurredAt
				r.Status = core.BorrowStatusReturned
				r.ReturnDate = &returnDate
				r.Condition = e.Condition
				r.Notes = e.Notes
			}
		}
	}

	list := make([]BorrowRequestInfo, 0, len(requests))
	for _, r := range requests {
		if query.UserID != "" && r.UserID != query.UserID {
			continue
		}

		if query.Status != "" && r.Status != query.Status {
			continue
		}

		if query.RequestID != "" && r.RequestID != query.RequestID {
			continue
		}

		list = append(list, *r)
	}

	slices.SortFunc(list, func(a, b BorrowRequestInfo) int {
		if c := a.RequestDate.Compare(b.RequestDate); c != 0 {
			return c
		}

		return strings.Compare(a.RequestID, b.RequestID)
	})

	return BorrowRequests{
		Requests:       list,
		Count:          len(list),
		SequenceNumber: maxSequence,
	}
}

// BuildEventFilter creates the filter for querying the lifecycle events of borrow requests.
func BuildEventFilter(query Query) eventstore.Filter {
	builder := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowRequestSubmittedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowRequestRejectedEventType,
			core.BorrowRequestMarkedOverdueEventType,
			core.BorrowedBookReturnedEventType,
		)

	var predicates []eventstore.FilterPredicate
	if query.UserID != "" {
		predicates = append(predicates, eventstore.P("UserID", query.UserID))
	}

	if query.RequestID != "" {
		predicates = append(predicates, eventstore.P("RequestID", query.RequestID))
	}

	if len(predicates) == 0 {
		return builder.Finalize()
	}

	return builder.
		AndAllPredicatesOf(predicates[0], predicates[1:]...).
		Finalize()
}
