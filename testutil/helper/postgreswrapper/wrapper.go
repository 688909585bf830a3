// Package postgreswrapper opens the postgres engine over one of its three database adapters
// for integration tests. Tests are skipped unless TEST_DATABASE_URL is set.
package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/postgresengine"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell/config"
)

const (
	envDatabaseURL = "TEST_DATABASE_URL"
	envAdapterType = "ADAPTER_TYPE"
)

// Wrapper abstracts over the different adapter types.
type Wrapper interface {
	GetEventStore() postgresengine.EventStore
	Exec(ctx context.Context, query string) error
	Close()
}

type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	es   postgresengine.EventStore
}

func (w *PGXPoolWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *PGXPoolWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.pool.Exec(ctx, query)

	return err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

type SQLDBWrapper struct {
	db *sql.DB
	es postgresengine.EventStore
}

func (w *SQLDBWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *SQLDBWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)

	return err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close()
}

type SQLXWrapper struct {
	db *sqlx.DB
	es postgresengine.EventStore
}

func (w *SQLXWrapper) GetEventStore() postgresengine.EventStore {
	return w.es
}

func (w *SQLXWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)

	return err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close()
}

// CreateWrapper opens the adapter named by ADAPTER_TYPE (pgx, sql or sqlx, default pgx) against
// TEST_DATABASE_URL, ensures the schema of tableName and empties it.
func CreateWrapper(t testing.TB, tableName string, options ...postgresengine.Option) Wrapper {
	t.Helper()

	dsn := os.Getenv(envDatabaseURL)
	if dsn == "" {
		t.Skipf("%s is not set", envDatabaseURL)
	}

	ctx := context.Background()
	options = append([]postgresengine.Option{postgresengine.WithTableName(tableName)}, options...)

	var wrapper Wrapper

	switch adapter := strings.ToLower(os.Getenv(envAdapterType)); adapter {
	case config.DBAdapterPGX, "":
		pool, err := config.PostgresPGXPool(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating event store in test setup")

		wrapper = &PGXPoolWrapper{pool: pool, es: es}

	case config.DBAdapterSQL:
		db, err := config.PostgresSQLDB(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating event store in test setup")

		wrapper = &SQLDBWrapper{db: db, es: es}

	case config.DBAdapterSQLX:
		db, err := config.PostgresSQLX(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating event store in test setup")

		wrapper = &SQLXWrapper{db: db, es: es}

	default:
		t.Fatalf("unsupported adapter type from env: %s", adapter)
	}

	require.NoError(t, wrapper.GetEventStore().EnsureSchema(ctx), "error ensuring schema in test setup")
	CleanUp(t, wrapper, tableName)

	return wrapper
}

// CleanUp empties the events table and resets its sequence.
func CleanUp(t testing.TB, wrapper Wrapper, tableName string) {
	t.Helper()

	err := wrapper.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", tableName))
	require.NoError(t, err, "error cleaning up the events table")
}
