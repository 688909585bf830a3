package notifications

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// Project builds the inbox of one user.
//
// Query Logic:
//
//	GIVEN: All notification events of the user
//	WHEN: Notifications query is executed
//	THEN: Notifications struct is returned, newest notification first
//	EXCLUDES: Read notifications if UnreadOnly is set
func Project(history core.DomainEvents, query Query, maxSequence uint) Notifications {
	inbox := make(map[core.NotificationIDString]*NotificationInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.NotificationCreated:
			if e.UserID != query.UserID {
				continue
			}

			inbox[e.NotificationID] = &NotificationInfo{
				NotificationID: e.NotificationID,
				Title:          e.Title,
				Message:        e.Message,
				Kind:           e.Kind,
				CreatedAt:      e.OccurredAt,
			}

		case core.NotificationMarkedRead:
			if n, ok := inbox[e.NotificationID]; ok {
				n.IsRead = true
			}
		}
	}

	unread := 0
	list := make([]NotificationInfo, 0, len(inbox))

	for _, n := range inbox {
		if !n.IsRead {
			unread++
		}

		if query.UnreadOnly && n.IsRead {
			continue
		}

		list = append(list, *n)
	}

	slices.SortFunc(list, func(a, b NotificationInfo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.NotificationID, b.NotificationID)
	})

	return Notifications{
		Notifications:  list,
		Count:          len(list),
		UnreadCount:    unread,
		SequenceNumber: maxSequence,
	}
}

// BuildEventFilter creates the filter for querying the notification events of one user.
func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.NotificationCreatedEventType,
			core.NotificationMarkedReadEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("UserID", query.UserID),
		).
		Finalize()
}
