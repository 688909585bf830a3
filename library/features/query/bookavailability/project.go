package bookavailability

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// Project counts the copies held by borrowers per catalog book.
//
// Query Logic:
//
//	GIVEN: All catalog events and all events that hand out or take back a copy
//	WHEN: BookAvailability query is executed
//	THEN: BookAvailability struct is returned, sorted by title
//	INVARIANT: BorrowedCopies + AvailableCopies = TotalCopies
func Project(history core.DomainEvents, _ Query, maxSequence uint) BookAvailability {
	books := make(map[core.BookIDString]*BookInfo)
	holders := make(map[core.RequestIDString]core.BookIDString)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			books[e.BookID] = &BookInfo{
				BookID:      e.BookID,
				ISBN:        e.ISBN,
				Title:       e.Title,
				Authors:     e.Authors,
				IsActive:    true,
				IsFeatured:  e.IsFeatured,
				TotalCopies: e.TotalCopies,
			}

		case core.BookDeactivated:
			if b, ok := books[e.BookID]; ok {
				b.IsActive = false
			}

		case core.BookReactivated:
			if b, ok := books[e.BookID]; ok {
				b.IsActive = true
			}

		case core.BorrowRequestApproved:
			holders[e.RequestID] = e.BookID

		case core.BorrowedBookReturned:
			delete(holders, e.RequestID)
		}
	}

	for _, bookID := range holders {
		if b, ok := books[bookID]; ok {
			b.BorrowedCopies++
		}
	}

	list := make([]BookInfo, 0, len(books))
	for _, b := range books {
		b.AvailableCopies = max(0, b.TotalCopies-b.BorrowedCopies)
		list = append(list, *b)
	}

	slices.SortFunc(list, func(a, b BookInfo) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}

		return strings.Compare(a.BookID, b.BookID)
	})

	return BookAvailability{
		Books:          list,
		Count:          len(list),
		SequenceNumber: maxSequence,
	}
}

// BuildEventFilter creates the filter for the catalog events and the copy-holding events,
// restricted to one book unless the query asks for all books.
func BuildEventFilter(query Query) eventstore.Filter {
	builder := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDeactivatedEventType,
			core.BookReactivatedEventType,
			core.BorrowRequestApprovedEventType,
			core.BorrowedBookReturnedEventType,
		)

	if query.BookID == uuid.Nil {
		return builder.Finalize()
	}

	return builder.
		AndAnyPredicateOf(eventstore.P("BookID", query.BookID.String())).
		Finalize()
}
