package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookAddedToCatalogEventType    = "BookAddedToCatalog"
	BookDeactivatedEventType       = "BookDeactivated"
	BookReactivatedEventType       = "BookReactivated"
	ChangingCatalogFailedEventType = "ChangingCatalogFailed"
)

// BookAddedToCatalog registers a title with the number of copies the library owns.
type BookAddedToCatalog struct {
	BookID      BookIDString
	ISBN        ISBNString
	Title       string
	Authors     string
	TotalCopies int
	IsFeatured  bool
	OccurredAt  OccurredAtTS
}

func BuildBookAddedToCatalog(
	bookID uuid.UUID,
	isbn string,
	title string,
	authors string,
	totalCopies int,
	isFeatured bool,
	occurredAt time.Time,
) BookAddedToCatalog {

	return BookAddedToCatalog{
		BookID:      bookID.String(),
		ISBN:        isbn,
		Title:       title,
		Authors:     authors,
		TotalCopies: totalCopies,
		IsFeatured:  isFeatured,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e BookAddedToCatalog) IsEventType() string {
	return BookAddedToCatalogEventType
}

func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookAddedToCatalog) IsErrorEvent() bool {
	return false
}

// BookDeactivated takes a book out of the catalog, no new borrow requests can be submitted for it.
type BookDeactivated struct {
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

func BuildBookDeactivated(bookID uuid.UUID, occurredAt time.Time) BookDeactivated {
	return BookDeactivated{
		BookID:     bookID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookDeactivated) IsEventType() string {
	return BookDeactivatedEventType
}

func (e BookDeactivated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookDeactivated) IsErrorEvent() bool {
	return false
}

// BookReactivated puts a deactivated book back into the catalog.
type BookReactivated struct {
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

func BuildBookReactivated(bookID uuid.UUID, occurredAt time.Time) BookReactivated {
	return BookReactivated{
		BookID:     bookID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookReactivated) IsEventType() string {
	return BookReactivatedEventType
}

func (e BookReactivated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookReactivated) IsErrorEvent() bool {
	return false
}

// ChangingCatalogFailed records a rejected catalog command.
type ChangingCatalogFailed struct {
	BookID      BookIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

func BuildChangingCatalogFailed(bookID uuid.UUID, failureInfo string, occurredAt time.Time) ChangingCatalogFailed {
	return ChangingCatalogFailed{
		BookID:      bookID.String(),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e ChangingCatalogFailed) IsEventType() string {
	return ChangingCatalogFailedEventType
}

func (e ChangingCatalogFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ChangingCatalogFailed) IsErrorEvent() bool {
	return true
}
