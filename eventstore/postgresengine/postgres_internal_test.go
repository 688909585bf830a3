package postgresengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/eventstore/postgresengine/internal/adapters"
)

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	*(dest[0].(*string)) = row[0].(string)
	*(dest[1].(*time.Time)) = row[1].(time.Time)
	*(dest[2].(*[]byte)) = row[2].([]byte)
	*(dest[3].(*[]byte)) = row[3].([]byte)
	*(dest[4].(*eventstore.MaxSequenceNumberUint)) = row[4].(eventstore.MaxSequenceNumberUint)

	return nil
}

func (r *fakeRows) Err() error   { return nil }
func (r *fakeRows) Close() error { return nil }

type fakeDB struct {
	rows         [][]any
	rowsAffected int64
	execErr      error
	queries      []string
}

func (db *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	db.queries = append(db.queries, query)
	return &fakeRows{rows: db.rows}, nil
}

func (db *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	db.queries = append(db.queries, query)
	return fakeResult{rowsAffected: db.rowsAffected}, db.execErr
}

func givenStorableEvent(t *testing.T, eventType string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		eventType,
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		[]byte(`{"BookID":"b-1"}`),
	)
	require.NoError(t, err)

	return event
}

func Test_BuildSelectQuery_WithoutFilterItems_HasNoWhereClause(t *testing.T) {
	// arrange
	es, err := newEventStore(&fakeDB{})
	require.NoError(t, err)

	// act
	sqlQuery, buildErr := es.buildSelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.NoError(t, buildErr)
	assert.NotContains(t, sqlQuery, "WHERE")
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
}

func Test_BuildSelectQuery_RendersEventTypesPredicatesAndTimeRange(t *testing.T) {
	// arrange
	es, err := newEventStore(&fakeDB{}, WithTableName("borrow_events"))
	require.NoError(t, err)

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BorrowRequestSubmitted", "BorrowRequestApproved").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		OrMatching().
		AllPredicatesOf(eventstore.P("UserID", "u-1"), eventstore.P("BookID", "b'2")).
		OccurredFrom(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
		Finalize()

	// act
	sqlQuery, buildErr := es.buildSelectQuery(filter)

	// assert
	assert.NoError(t, buildErr)
	assert.Contains(t, sqlQuery, `FROM "borrow_events"`)
	assert.Contains(t, sqlQuery, `"event_type" IN ('BorrowRequestApproved', 'BorrowRequestSubmitted')`)
	assert.Contains(t, sqlQuery, `payload @> '{"BookID":"b-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `payload @> '{"BookID":"b''2"}'::jsonb`)
	assert.Contains(t, sqlQuery, `"occurred_at" >= '2024-01-01T00:00:00Z'::timestamp with time zone`)
	assert.NotContains(t, sqlQuery, `"occurred_at" <=`)
}

func Test_BuildInsertQuery_GuardsOnExpectedMaxSequenceNumber(t *testing.T) {
	// arrange
	es, err := newEventStore(&fakeDB{})
	require.NoError(t, err)

	filter := eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("BookID", "b-1")).Finalize()

	// act
	single, singleErr := es.buildAppendQuery(eventstore.StorableEvents{givenStorableEvent(t, "BookAddedToCatalog")}, filter, 7)
	multi, multiErr := es.buildAppendQuery(
		eventstore.StorableEvents{givenStorableEvent(t, "BookAddedToCatalog"), givenStorableEvent(t, "BookDeactivated")},
		filter,
		7,
	)

	// assert
	assert.NoError(t, singleErr)
	assert.Contains(t, single, `WITH context AS (SELECT MAX("sequence_number") AS "max_seq" FROM "events"`)
	assert.Contains(t, single, `COALESCE("max_seq", 0) = 7`)
	assert.NotContains(t, single, "UNION ALL")

	assert.NoError(t, multiErr)
	assert.Contains(t, multi, "UNION ALL")
	assert.Contains(t, multi, `COALESCE("max_seq", 0) = 7`)
}

func Test_Append_ReturnsConcurrencyConflict_WhenNoRowWasInserted(t *testing.T) {
	// arrange
	db := &fakeDB{rowsAffected: 0}
	es, err := newEventStore(db)
	require.NoError(t, err)

	// act
	appendErr := es.Append(
		context.Background(),
		eventstore.BuildEventFilter().MatchingAnyEvent(),
		3,
		givenStorableEvent(t, "BookAddedToCatalog"),
	)

	// assert
	assert.ErrorIs(t, appendErr, eventstore.ErrConcurrencyConflict)
	assert.Len(t, db.queries, 1)
}

func Test_Append_WrapsDatabaseErrors(t *testing.T) {
	// arrange
	dbErr := errors.New("connection reset")
	es, err := newEventStore(&fakeDB{execErr: dbErr})
	require.NoError(t, err)

	// act
	appendErr := es.Append(
		context.Background(),
		eventstore.BuildEventFilter().MatchingAnyEvent(),
		0,
		givenStorableEvent(t, "BookAddedToCatalog"),
	)

	// assert
	assert.ErrorIs(t, appendErr, eventstore.ErrAppendingEventFailed)
	assert.ErrorIs(t, appendErr, dbErr)
}

func Test_Query_ReturnsEventsAndHighestSequenceNumber(t *testing.T) {
	// arrange
	occurredAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	db := &fakeDB{rows: [][]any{
		{"BookAddedToCatalog", occurredAt, []byte(`{"BookID":"b-1"}`), []byte(`{}`), eventstore.MaxSequenceNumberUint(4)},
		{"BookDeactivated", occurredAt, []byte(`{"BookID":"b-1"}`), []byte(`{}`), eventstore.MaxSequenceNumberUint(9)},
	}}
	es, err := newEventStore(db)
	require.NoError(t, err)

	// act
	events, maxSeq, queryErr := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.NoError(t, queryErr)
	assert.Len(t, events, 2)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(9), maxSeq)
	assert.Equal(t, "BookDeactivated", events[1].EventType)
}

func Test_WithTableName_RejectsInvalidIdentifiers(t *testing.T) {
	_, emptyErr := newEventStore(&fakeDB{}, WithTableName(""))
	_, invalidErr := newEventStore(&fakeDB{}, WithTableName("events; DROP TABLE x"))

	assert.ErrorIs(t, emptyErr, eventstore.ErrEmptyEventsTableName)
	assert.ErrorIs(t, invalidErr, eventstore.ErrInvalidEventsTableName)
}

func Test_EnsureSchema_ExecutesAllStatements(t *testing.T) {
	// arrange
	db := &fakeDB{}
	es, err := newEventStore(db, WithTableName("library_events"))
	require.NoError(t, err)

	// act
	schemaErr := es.EnsureSchema(context.Background())

	// assert
	assert.NoError(t, schemaErr)
	assert.Len(t, db.queries, 4)
	assert.Contains(t, db.queries[0], "CREATE TABLE IF NOT EXISTS library_events")
	assert.Contains(t, db.queries[3], "jsonb_path_ops")
}
