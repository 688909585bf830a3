// Package decideborrowrequest implements an admin's approval or rejection of a pending borrow request.
//
// Approving takes one copy of the book. The consistency boundary is everything that happened to the book
// plus the request itself, so two approvals competing for the last copy conflict on append and the
// retried one fails with "book is no longer available".
package decideborrowrequest
