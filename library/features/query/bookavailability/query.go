package bookavailability

import (
	"github.com/google/uuid"
)

const (
	queryType = "BookAvailability"
)

// Query represents the intent to query the availability of one book, or of all books if BookID is uuid.Nil.
type Query struct {
	BookID uuid.UUID
}

// BuildQuery creates a new Query for one book.
func BuildQuery(bookID uuid.UUID) Query {
	return Query{
		BookID: bookID,
	}
}

// BuildQueryForAllBooks creates a new Query for the whole catalog.
func BuildQueryForAllBooks() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
