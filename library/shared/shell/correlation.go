package shell

import (
	"context"

	"github.com/google/uuid"
)

type correlationKey struct{}

// WithCorrelationID stores the ID of the inbound request (or automation run) in ctx.
func WithCorrelationID(ctx context.Context, correlationID uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// CorrelationIDFrom returns a fresh ID if ctx carries none.
func CorrelationIDFrom(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(correlationKey{}).(uuid.UUID); ok {
		return id
	}

	return uuid.New()
}

// MetadataFor builds the metadata of a new event: a fresh message ID, caused by and correlated with the inbound request.
func MetadataFor(ctx context.Context) EventMetadata {
	correlationID := CorrelationIDFrom(ctx)

	return BuildEventMetadata(uuid.Must(uuid.NewV7()), correlationID, correlationID)
}
