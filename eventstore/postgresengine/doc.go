// Package postgresengine stores the borrow desk events in a single PostgreSQL table.
//
// Appends are conditional inserts: a CTE computes the highest sequence number of all events matching
// the command's Filter, and the new events are only inserted if it still equals the number the
// command handler saw when it queried. Zero inserted rows means eventstore.ErrConcurrencyConflict.
//
// Supported connection types are pgxpool.Pool, sql.DB (lib/pq) and sqlx.DB:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.EnsureSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
