package core

// BorrowStatus is the lifecycle state of a borrow request:
//
//	PENDING -> APPROVED | REJECTED
//	APPROVED -> RETURNED | OVERDUE
//	OVERDUE -> RETURNED
//
// REJECTED and RETURNED are terminal.
type BorrowStatus string

const (
	BorrowStatusPending  BorrowStatus = "PENDING"
	BorrowStatusApproved BorrowStatus = "APPROVED"
	BorrowStatusRejected BorrowStatus = "REJECTED"
	BorrowStatusReturned BorrowStatus = "RETURNED"
	BorrowStatusOverdue  BorrowStatus = "OVERDUE"
)

// IsActive is true for requests that block another request for the same user and book.
func (s BorrowStatus) IsActive() bool {
	return s == BorrowStatusPending || s == BorrowStatusApproved
}

// HoldsCopy is true while the borrower has the book.
func (s BorrowStatus) HoldsCopy() bool {
	return s == BorrowStatusApproved || s == BorrowStatusOverdue
}

// IsValid reports whether s is one of the known statuses.
func (s BorrowStatus) IsValid() bool {
	switch s {
	case BorrowStatusPending, BorrowStatusApproved, BorrowStatusRejected, BorrowStatusReturned, BorrowStatusOverdue:
		return true
	default:
		return false
	}
}

// NotificationKind is the transition a notification was triggered by.
type NotificationKind string

const (
	NotificationKindSubmitted  NotificationKind = "SUBMITTED"
	NotificationKindNewRequest NotificationKind = "NEW_REQUEST"
	NotificationKindApproved   NotificationKind = "APPROVED"
	NotificationKindRejected   NotificationKind = "REJECTED"
	NotificationKindReturned   NotificationKind = "RETURNED"
	NotificationKindOverdue    NotificationKind = "OVERDUE"
	NotificationKindFineIssued NotificationKind = "FINE_ISSUED"
	NotificationKindFinePaid   NotificationKind = "FINE_PAID"
	NotificationKindDueSoon    NotificationKind = "DUE_SOON"
)

// DecideAction is an admin's decision on a pending borrow request.
type DecideAction string

const (
	DecideActionApprove DecideAction = "APPROVE"
	DecideActionReject  DecideAction = "REJECT"
)

func (a DecideAction) IsValid() bool {
	return a == DecideActionApprove || a == DecideActionReject
}
