// Package createnotification implements storing a notification for a user.
//
// Batch runs may ask for the same notification repeatedly. An identical notification
// (same user, title and message) created within DedupeWindow is not stored again.
// The consistency boundary is the user's notifications of that window, so concurrent duplicates conflict on append
// and the retried one is deduplicated.
package createnotification
