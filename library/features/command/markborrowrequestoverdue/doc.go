// Package markborrowrequestoverdue implements the overdue transition of a single borrow request.
//
// The automation's overdue batch runs this command once per APPROVED request it found in the borrow request projection.
// Each run re-checks the request inside its own consistency boundary, so a return that happened after the
// projection was read wins and the command becomes a no-op.
package markborrowrequestoverdue
