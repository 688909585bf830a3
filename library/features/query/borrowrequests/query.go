package borrowrequests

import (
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	queryType = "BorrowRequests"
)

// Query represents the intent to list borrow requests.
// An empty UserID lists the requests of all users, an empty Status lists all statuses.
// A RequestID narrows the list to that single request.
type Query struct {
	UserID    core.UserIDString
	Status    core.BorrowStatus
	RequestID core.RequestIDString
}

// BuildQuery creates a new Query with the provided filters.
func BuildQuery(userID core.UserIDString, status core.BorrowStatus) Query {
	return Query{
		UserID: userID,
		Status: status,
	}
}

// BuildRequestQuery creates a Query for one borrow request.
func BuildRequestQuery(requestID core.RequestIDString) Query {
	return Query{
		RequestID: requestID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
