package core

import (
	"time"
)

// Alias types instead of full value objects.

type EventTypeString = string

type BookIDString = string

type UserIDString = string

type RequestIDString = string

type FineIDString = string

type NotificationIDString = string

type ISBNString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision,
// which is what Postgres stores.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
