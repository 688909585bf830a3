// Package amqp publishes stored notifications to a RabbitMQ topic exchange.
//
// Messages are JSON encoded notify.Notification values, routed by "notification.<kind>",
// e.g. "notification.fine_issued".
package amqp
