package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/eventstore/postgresengine"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

// OpenEventStore creates the event store selected by STORE and DB_ADAPTER and makes sure the
// events table exists. With DATABASE_REPLICA_URL set, queries that allow eventual consistency
// are served from the replica. The returned close func releases the database connections.
func OpenEventStore(
	ctx context.Context,
	c App,
	logger *slog.Logger,
	options ...postgresengine.Option,
) (shell.EventStore, func(), error) {

	if c.Store == StoreMemory {
		var memoryOptions []memoryengine.Option
		if logger != nil {
			memoryOptions = append(memoryOptions, memoryengine.WithLogger(logger))
		}

		return memoryengine.NewEventStore(memoryOptions...), func() {}, nil
	}

	options = append([]postgresengine.Option{postgresengine.WithTableName(c.EventsTable)}, options...)

	var (
		es      postgresengine.EventStore
		closeDB func()
		err     error
	)

	switch c.DBAdapter {
	case DBAdapterSQL:
		es, closeDB, err = openSQLDBEventStore(ctx, c, options)

	case DBAdapterSQLX:
		es, closeDB, err = openSQLXEventStore(ctx, c, options)

	case DBAdapterPGX:
		es, closeDB, err = openPGXEventStore(ctx, c, options)

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidDBAdapter, c.DBAdapter)
	}

	if err != nil {
		return nil, nil, err
	}

	if err = es.EnsureSchema(ctx); err != nil {
		closeDB()

		return nil, nil, err
	}

	return es, closeDB, nil
}

func openPGXEventStore(ctx context.Context, c App, options []postgresengine.Option) (postgresengine.EventStore, func(), error) {
	pool, err := PostgresPGXPool(ctx, c.DatabaseURL)
	if err != nil {
		return postgresengine.EventStore{}, nil, err
	}

	if c.DatabaseReplicaURL == "" {
		es, storeErr := postgresengine.NewEventStoreFromPGXPool(pool, options...)

		return closeOnError(es, pool.Close, storeErr)
	}

	replica, err := PostgresPGXPool(ctx, c.DatabaseReplicaURL)
	if err != nil {
		pool.Close()

		return postgresengine.EventStore{}, nil, err
	}

	closeBoth := func() {
		replica.Close()
		pool.Close()
	}

	es, err := postgresengine.NewEventStoreFromPGXPoolAndReplica(pool, replica, options...)

	return closeOnError(es, closeBoth, err)
}

func openSQLDBEventStore(ctx context.Context, c App, options []postgresengine.Option) (postgresengine.EventStore, func(), error) {
	db, err := PostgresSQLDB(ctx, c.DatabaseURL)
	if err != nil {
		return postgresengine.EventStore{}, nil, err
	}

	closeDB := func() { _ = db.Close() }

	if c.DatabaseReplicaURL == "" {
		es, storeErr := postgresengine.NewEventStoreFromSQLDB(db, options...)

		return closeOnError(es, closeDB, storeErr)
	}

	replica, err := PostgresSQLDB(ctx, c.DatabaseReplicaURL)
	if err != nil {
		closeDB()

		return postgresengine.EventStore{}, nil, err
	}

	closeBoth := func() {
		_ = replica.Close()
		closeDB()
	}

	es, err := postgresengine.NewEventStoreFromSQLDBAndReplica(db, replica, options...)

	return closeOnError(es, closeBoth, err)
}

func openSQLXEventStore(ctx context.Context, c App, options []postgresengine.Option) (postgresengine.EventStore, func(), error) {
	db, err := PostgresSQLX(ctx, c.DatabaseURL)
	if err != nil {
		return postgresengine.EventStore{}, nil, err
	}

	closeDB := func() { _ = db.Close() }

	if c.DatabaseReplicaURL == "" {
		es, storeErr := postgresengine.NewEventStoreFromSQLX(db, options...)

		return closeOnError(es, closeDB, storeErr)
	}

	replica, err := PostgresSQLX(ctx, c.DatabaseReplicaURL)
	if err != nil {
		closeDB()

		return postgresengine.EventStore{}, nil, err
	}

	closeBoth := func() {
		_ = replica.Close()
		closeDB()
	}

	es, err := postgresengine.NewEventStoreFromSQLXAndReplica(db, replica, options...)

	return closeOnError(es, closeBoth, err)
}

func closeOnError(
	es postgresengine.EventStore,
	closeDB func(),
	err error,
) (postgresengine.EventStore, func(), error) {

	if err != nil {
		closeDB()

		return postgresengine.EventStore{}, nil, err
	}

	return es, closeDB, nil
}
