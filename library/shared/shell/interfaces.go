package shell

import (
	"context"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
)

// QueriesEvents is the part of an eventstore engine needed by query handlers.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is satisfied by postgresengine.EventStore and *memoryengine.EventStore.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Command is implemented by all commands, CommandType labels logs, metrics and spans.
type Command interface {
	CommandType() string
}

// Query is implemented by all queries, QueryType labels logs, metrics and spans.
type Query interface {
	QueryType() string
}

// QueryResult is a projection, GetSequenceNumber returns the highest sequence number it includes.
type QueryResult interface {
	GetSequenceNumber() uint
}

// CoreCommandHandler processes one command type: Query -> Unmarshal -> Decide -> Append, with retries.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// CoreQueryHandler processes one query type: Query -> Unmarshal -> Project.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
