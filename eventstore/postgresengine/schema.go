package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
)

const logMsgSchemaEnsured = "schema ensured"

// EnsureSchema creates the events table and its indexes if they do not exist yet.
func (es EventStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range es.schemaStatements() {
		if _, err := es.db.Exec(ctx, stmt); err != nil {
			es.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, stmt)

			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	es.logInfo(ctx, logMsgOperation+logMsgSchemaEnsured, "table", es.eventTableName)

	return nil
}

func (es EventStore) schemaStatements() []string {
	table := es.eventTableName

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	event_type TEXT NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
	append_timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_event_type_idx ON %s (event_type)`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_occurred_at_idx ON %s (occurred_at)`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_payload_idx ON %s USING gin (payload jsonb_path_ops)`, table, table),
	}
}
