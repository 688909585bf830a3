package fines

import (
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	queryType = "Fines"
)

// Query represents the intent to list the fines of one user, or of all users if UserID is empty.
type Query struct {
	UserID core.UserIDString
}

// BuildQuery creates a new Query with the provided user ID.
func BuildQuery(userID core.UserIDString) Query {
	return Query{
		UserID: userID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
