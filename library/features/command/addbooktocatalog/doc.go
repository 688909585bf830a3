// Package addbooktocatalog implements the Add Book to Catalog use case.
//
// A book is registered once with the number of copies the library owns.
// Availability is derived from this total and the approved, not yet returned borrow requests.
package addbooktocatalog
