package core

import (
	"errors"
)

// Error kinds. Every error returned by a Decide function wraps exactly one of them,
// the HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrNotPermitted  = errors.New("not permitted")
	ErrRuleViolation = errors.New("business rule violated")
	ErrInvalidInput  = errors.New("invalid input")
)

// FailureError is a rejected command, its Reason is safe to show to the caller.
type FailureError struct {
	FailedEventType EventTypeString
	Reason          string
	Kind            error
}

// Failure builds the error for a rejected command, e.g. "DecidingBorrowRequestFailed: book is no longer available".
func Failure(failedEventType EventTypeString, reason string, kind error) error {
	return FailureError{FailedEventType: failedEventType, Reason: reason, Kind: kind}
}

func (e FailureError) Error() string {
	return e.FailedEventType + ": " + e.Reason
}

func (e FailureError) Unwrap() error {
	return e.Kind
}

// FailureReason returns the Reason of a FailureError in err's chain, or err.Error() otherwise.
func FailureReason(err error) string {
	var failure FailureError
	if errors.As(err, &failure) {
		return failure.Reason
	}

	return err.Error()
}
