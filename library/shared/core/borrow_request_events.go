package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	BorrowRequestSubmittedEventType        = "BorrowRequestSubmitted"
	SubmittingBorrowRequestFailedEventType = "SubmittingBorrowRequestFailed"
	BorrowRequestApprovedEventType         = "BorrowRequestApproved"
	BorrowRequestRejectedEventType         = "BorrowRequestRejected"
	DecidingBorrowRequestFailedEventType   = "DecidingBorrowRequestFailed"
	BorrowedBookReturnedEventType          = "BorrowedBookReturned"
	ReturningBorrowedBookFailedEventType   = "ReturningBorrowedBookFailed"
	BorrowRequestMarkedOverdueEventType    = "BorrowRequestMarkedOverdue"
)

// BorrowRequestSubmitted creates a PENDING request, OccurredAt is the request date.
type BorrowRequestSubmitted struct {
	RequestID     RequestIDString
	UserID        UserIDString
	BookID        BookIDString
	Reason        string
	RequestedDays int
	OccurredAt    OccurredAtTS
}

func BuildBorrowRequestSubmitted(
	requestID uuid.UUID,
	userID UserIDString,
	bookID uuid.UUID,
	reason string,
	requestedDays int,
	occurredAt time.Time,
) BorrowRequestSubmitted {

	return BorrowRequestSubmitted{
		RequestID:     requestID.String(),
		UserID:        userID,
		BookID:        bookID.String(),
		Reason:        reason,
		RequestedDays: requestedDays,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BorrowRequestSubmitted) IsEventType() string {
	return BorrowRequestSubmittedEventType
}

func (e BorrowRequestSubmitted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BorrowRequestSubmitted) IsErrorEvent() bool {
	return false
}

type SubmittingBorrowRequestFailed struct {
	RequestID   RequestIDString
	UserID      UserIDString
	BookID      BookIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

func BuildSubmittingBorrowRequestFailed(
	requestID uuid.UUID,
	userID UserIDString,
	bookID uuid.UUID,
	failureInfo string,
	occurredAt time.Time,
) SubmittingBorrowRequestFailed {

	return SubmittingBorrowRequestFailed{
		RequestID:   requestID.String(),
		UserID:      userID,
		BookID:      bookID.String(),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e SubmittingBorrowRequestFailed) IsEventType() string {
	return SubmittingBorrowRequestFailedEventType
}

func (e SubmittingBorrowRequestFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e SubmittingBorrowRequestFailed) IsErrorEvent() bool {
	return true
}

// BorrowRequestApproved hands out one copy of the book, OccurredAt is the approval date.
type BorrowRequestApproved struct {
	RequestID     RequestIDString
	UserID        UserIDString
	BookID        BookIDString
	AdminID       UserIDString
	AdminResponse string
	DueDate       time.Time
	OccurredAt    OccurredAtTS
}

func BuildBorrowRequestApproved(
	requestID uuid.UUID,
	userID UserIDString,
	bookID BookIDString,
	adminID UserIDString,
	adminResponse string,
	dueDate time.Time,
	occurredAt time.Time,
) BorrowRequestApproved {

	return BorrowRequestApproved{
		RequestID:     requestID.String(),
		UserID:        userID,
		BookID:        bookID,
		AdminID:       adminID,
		AdminResponse: adminResponse,
		DueDate:       ToOccurredAt(dueDate),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BorrowRequestApproved) IsEventType() string {
	return BorrowRequestApprovedEventType
}

func (e BorrowRequestApproved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BorrowRequestApproved) IsErrorEvent() bool {
	return false
}

type BorrowRequestRejected struct {
	RequestID     RequestIDString
	UserID        UserIDString
	BookID        BookIDString
	AdminID       UserIDString
	AdminResponse string
	OccurredAt    OccurredAtTS
}

func BuildBorrowRequestRejected(
	requestID uuid.UUID,
	userID UserIDString,
	bookID BookIDString,
	adminID UserIDString,
	adminResponse string,
	occurredAt time.Time,
) BorrowRequestRejected {

	return BorrowRequestRejected{
		RequestID:     requestID.String(),
		UserID:        userID,
		BookID:        bookID,
		AdminID:       adminID,
		AdminResponse: adminResponse,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BorrowRequestRejected) IsEventType() string {
	return BorrowRequestRejectedEventType
}

func (e BorrowRequestRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BorrowRequestRejected) IsErrorEvent() bool {
	return false
}

type DecidingBorrowRequestFailed struct {
	RequestID   RequestIDString
	AdminID     UserIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

func BuildDecidingBorrowRequestFailed(
	requestID uuid.UUID,
	adminID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) DecidingBorrowRequestFailed {

	return DecidingBorrowRequestFailed{
		RequestID:   requestID.String(),
		AdminID:     adminID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e DecidingBorrowRequestFailed) IsEventType() string {
	return DecidingBorrowRequestFailedEventType
}

func (e DecidingBorrowRequestFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e DecidingBorrowRequestFailed) IsErrorEvent() bool {
	return true
}

// BorrowedBookReturned gives the copy back, OccurredAt is the return date.
type BorrowedBookReturned struct {
	RequestID  RequestIDString
	UserID     UserIDString
	BookID     BookIDString
	Condition  string
	Notes      string
	OccurredAt OccurredAtTS
}

func BuildBorrowedBookReturned(
	requestID uuid.UUID,
	userID UserIDString,
	bookID BookIDString,
	condition string,
	notes string,
	occurredAt time.Time,
) BorrowedBookReturned {

	return BorrowedBookReturned{
		RequestID:  requestID.String(),
		UserID:     userID,
		BookID:     bookID,
		Condition:  condition,
		Notes:      notes,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BorrowedBookReturned) IsEventType() string {
	return BorrowedBookReturnedEventType
}

func (e BorrowedBookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BorrowedBookReturned) IsErrorEvent() bool {
	return false
}

type ReturningBorrowedBookFailed struct {
	RequestID   RequestIDString
	UserID      UserIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

func BuildReturningBorrowedBookFailed(
	requestID uuid.UUID,
	userID UserIDString,
	failureInfo string,
	occurredAt time.Time,
) ReturningBorrowedBookFailed {

	return ReturningBorrowedBookFailed{
		RequestID:   requestID.String(),
		UserID:      userID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e ReturningBorrowedBookFailed) IsEventType() string {
	return ReturningBorrowedBookFailedEventType
}

func (e ReturningBorrowedBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReturningBorrowedBookFailed) IsErrorEvent() bool {
	return true
}

// BorrowRequestMarkedOverdue is appended by the overdue check once the due date has passed.
type BorrowRequestMarkedOverdue struct {
	RequestID  RequestIDString
	UserID     UserIDString
	BookID     BookIDString
	DueDate    time.Time
	OccurredAt OccurredAtTS
}

func BuildBorrowRequestMarkedOverdue(
	requestID uuid.UUID,
	userID UserIDString,
	bookID BookIDString,
	dueDate time.Time,
	occurredAt time.Time,
) BorrowRequestMarkedOverdue {

	return BorrowRequestMarkedOverdue{
		RequestID:  requestID.String(),
		UserID:     userID,
		BookID:     bookID,
		DueDate:    ToOccurredAt(dueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BorrowRequestMarkedOverdue) IsEventType() string {
	return BorrowRequestMarkedOverdueEventType
}

func (e BorrowRequestMarkedOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BorrowRequestMarkedOverdue) IsErrorEvent() bool {
	return false
}
