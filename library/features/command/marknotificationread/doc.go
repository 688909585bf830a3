// Package marknotificationread implements a user marking one of their notifications as read.
package marknotificationread
