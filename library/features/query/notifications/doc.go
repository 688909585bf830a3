// Package notifications implements a user's notification inbox with the unread count.
package notifications
