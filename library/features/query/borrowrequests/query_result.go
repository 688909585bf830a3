package borrowrequests

import (
	"time"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// BorrowRequestInfo is the current state of one borrow request.
// DueDate and ApprovedDate are set iff the request was approved, ReturnDate iff it was returned.
type BorrowRequestInfo struct {
	RequestID     core.RequestIDString
	UserID        core.UserIDString
	BookID        core.BookIDString
	Status        core.BorrowStatus
	Reason        string
	RequestedDays int
	RequestDate   time.Time
	ApprovedDate  *time.Time
	DueDate       *time.Time
	ReturnDate    *time.Time
	AdminID       core.UserIDString
	AdminResponse string
	Condition     string
	Notes         string
}

// BorrowRequests represents the query result.
type BorrowRequests struct {
	Requests       []BorrowRequestInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r BorrowRequests) GetSequenceNumber() uint {
	return r.SequenceNumber
}
