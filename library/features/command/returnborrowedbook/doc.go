// Package returnborrowedbook implements a member returning a borrowed book.
//
// Only the borrower can return, and only while the request is APPROVED or OVERDUE.
// The return date is the event's OccurredAt, the freed copy shows up in availability right away.
package returnborrowedbook
