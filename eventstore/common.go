package eventstore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict signals that another event matching the same Filter was appended since the Query.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrEmptyEventsTableName        = errors.New("events table name must not be empty")
	ErrInvalidEventsTableName      = errors.New("events table name must be a plain sql identifier")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending the event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrCreatingSchemaFailed        = errors.New("creating the events schema failed")
)

// MaxSequenceNumberUint is the highest sequence number of a "dynamic event stream" at the time it was queried.
type MaxSequenceNumberUint = uint
