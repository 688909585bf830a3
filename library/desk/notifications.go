package desk

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/marknotificationread"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/notifications"
	"github.com/AntonStoeckl/borrowdesk/library/notify"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// Notify dispatches a notification and reports whether a new one was stored.
func (d *Desk) Notify(ctx context.Context, transition notify.Transition) bool {
	return d.trigger.Dispatch(ctx, transition)
}

// BookTitle returns the catalog title of the book, or the ID if the lookup fails.
func (d *Desk) BookTitle(ctx context.Context, bookID core.BookIDString) string {
	return d.bookTitle(ctx, bookID)
}

// MarkNotificationRead marks one of the user's notifications as read.
func (d *Desk) MarkNotificationRead(ctx context.Context, userID core.UserIDString, notificationID uuid.UUID) error {
	_, err := d.markRead.Handle(ctx, marknotificationread.BuildCommand(notificationID, userID, d.now()))

	return err
}

// Notifications returns the user's inbox.
func (d *Desk) Notifications(ctx context.Context, userID core.UserIDString, unreadOnly bool) (notifications.Notifications, error) {
	return d.notifications.Handle(ctx, notifications.BuildQuery(userID, unreadOnly))
}
