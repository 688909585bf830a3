package notifications

import (
	"time"

	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// NotificationInfo is one notification of the inbox.
type NotificationInfo struct {
	NotificationID core.NotificationIDString
	Title          string
	Message        string
	Kind           core.NotificationKind
	CreatedAt      time.Time
	IsRead         bool
}

// Notifications represents the query result, UnreadCount counts all unread notifications regardless of UnreadOnly.
type Notifications struct {
	Notifications  []NotificationInfo
	Count          int
	UnreadCount    int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r Notifications) GetSequenceNumber() uint {
	return r.SequenceNumber
}
