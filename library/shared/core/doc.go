// Package core contains the domain events of the borrow desk:
// a library catalog, borrow requests with their approval lifecycle, fines for overdue books and notifications.
//
// Events describe meaningful business occurrences like BorrowRequestApproved or FineIssued rather than
// generic create/update operations. Every state of a borrow request, a fine or a notification is a
// projection over these events.
//
// The package also holds the pure rules shared by several features: the fine calculator,
// the lifecycle statuses and the error kinds that callers map to responses.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
