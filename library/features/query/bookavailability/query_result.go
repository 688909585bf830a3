package bookavailability

import (
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// BookInfo is the catalog entry of one book with its current availability.
type BookInfo struct {
	BookID          core.BookIDString
	ISBN            core.ISBNString
	Title           string
	Authors         string
	IsActive        bool
	IsFeatured      bool
	TotalCopies     int
	AvailableCopies int
	BorrowedCopies  int
}

// BookAvailability represents the query result.
type BookAvailability struct {
	Books          []BookInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r BookAvailability) GetSequenceNumber() uint {
	return r.SequenceNumber
}

// Book returns the entry of the given book, false if it is not in the catalog.
func (r BookAvailability) Book(bookID core.BookIDString) (BookInfo, bool) {
	for _, b := range r.Books {
		if b.BookID == bookID {
			return b, true
		}
	}

	return BookInfo{}, false
}
