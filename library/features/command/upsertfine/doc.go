// Package upsertfine implements issuing and updating the fine of an overdue borrow request.
//
// There is at most one unpaid fine per request. While the book is out the fine grows every day,
// the overdue batch re-runs this command and the unpaid fine's amount is updated in place.
// Days already covered by a paid fine are never charged again.
package upsertfine
