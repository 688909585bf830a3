// Package eventstore provides the core abstractions of the event store behind the borrow desk.
//
// All state of the library (books, borrow requests, fines, notifications) is kept as an append-only
// log of events. There are no per-aggregate streams: each command handler describes the events it
// cares about with a Filter, and that Filter is both the query and the consistency boundary for the
// following append.
//
// A Filter can select events by:
//   - Event types
//   - Top-level string fields of the JSON payload (predicates)
//   - Time ranges (occurred from/until)
//
// Typical usage in a command handler:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.BorrowRequestApprovedEventType,
//			core.BorrowedBookReturnedEventType).
//		AndAnyPredicateOf(P("BookID", bookID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	// decide ...
//
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//	if errors.Is(err, ErrConcurrencyConflict) {
//		// somebody else appended a matching event, query and decide again
//	}
package eventstore
