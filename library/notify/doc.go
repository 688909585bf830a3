// Package notify implements the Notification Trigger.
//
// A Trigger turns a state transition (approved, rejected, returned, overdue, fine issued,
// fine paid, due soon, submitted, new request) into a user-facing title and message and
// stores it with the createnotification command, which suppresses identical notifications
// within a five minute window. Newly stored notifications are optionally handed to a
// Publisher, e.g. the RabbitMQ publisher in notify/amqp.
//
// Notifications are a side effect: failures are logged and never returned to the caller,
// so they can not undo the state transition that triggered them.
package notify
