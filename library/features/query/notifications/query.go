package notifications

import (
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	queryType = "Notifications"
)

// Query represents the intent to list the notifications of one user.
type Query struct {
	UserID     core.UserIDString
	UnreadOnly bool
}

// BuildQuery creates a new Query with the provided user ID.
func BuildQuery(userID core.UserIDString, unreadOnly bool) Query {
	return Query{
		UserID:     userID,
		UnreadOnly: unreadOnly,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
