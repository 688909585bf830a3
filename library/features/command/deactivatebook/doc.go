// Package deactivatebook implements taking a book out of the catalog and putting it back.
//
// An inactive book keeps its copies and running borrow requests, but no new borrow requests can be submitted for it.
package deactivatebook
