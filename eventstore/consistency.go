package eventstore

import "context"

// ConsistencyLevel tells an engine with a read replica where a Query may be served from.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. Command handlers need it to see their own writes.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica, which is fine for pure query handlers.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store the consistency level.
const ConsistencyLevelKey contextKey = "eventstore.consistency_level"

// WithStrongConsistency marks the context so that the primary database is used.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency marks the context so that a replica may be used.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// DefaultToEventualConsistency marks the context so that a replica may be used,
// unless the caller already asked for a level explicitly.
func DefaultToEventualConsistency(ctx context.Context) context.Context {
	if _, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return ctx
	}

	return WithEventualConsistency(ctx)
}

// GetConsistencyLevel defaults to StrongConsistency when nothing is set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
