// Package bookavailability implements the copies-per-book query.
//
// Available copies are the catalog's total copies minus the copies held by approved or
// overdue requests. Since approvals are decided inside the book's consistency boundary,
// available copies never drop below zero.
package bookavailability
