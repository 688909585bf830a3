package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried_total"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	spanAttrOperation    = "operation"
	spanAttrEventCount   = "event_count"
	spanAttrEventType    = "event_type"
	spanAttrExpectedSeq  = "expected_sequence"
	spanAttrMaxSequence  = "max_sequence"
	spanAttrRowsAffected = "rows_affected"
	spanAttrErrorType    = "error_type"
	spanAttrDurationMS   = "duration_ms"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeBuildQuery      = "build_query"
	errorTypeDatabaseQuery   = "database_query"
	errorTypeRowScan         = "row_scan"
	errorTypeBuildEvent      = "build_storable_event"
	errorTypeDatabaseExec    = "database_exec"
	errorTypeRowsAffected    = "rows_affected"
	errorTypeConcurrency     = "concurrency_conflict"
	errorTypeContextCanceled = "context_canceled"
)

/***** Logging *****/

func (es EventStore) logDebug(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Debug(msg, args...)
	}
}

func (es EventStore) logInfo(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

func (es EventStore) logWarn(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Warn(msg, args...)
	}
}

// logError prepends the error attribute to args.
func (es EventStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if es.logger != nil {
		es.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

/***** Metrics *****/

func (es EventStore) recordDuration(ctx context.Context, metric string, d time.Duration, operation, status string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if cc, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		cc.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, d, labels)
}

func (es EventStore) recordValue(ctx context.Context, metric string, value float64, operation string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusSuccess}

	if cc, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		cc.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if cc, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		cc.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

func (es EventStore) recordError(ctx context.Context, metric string, d time.Duration, operation, errorType string) {
	es.recordDuration(ctx, metric, d, operation, statusError)
	es.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

func (es EventStore) recordConcurrencyConflict(ctx context.Context) {
	es.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operationAppend,
		labelConflictType: "concurrency",
	})
}

/***** Tracing *****/

// spanObserver is a no-op when no TracingCollector is configured.
type spanObserver struct {
	collector eventstore.TracingCollector
	span      eventstore.SpanContext
}

func (es EventStore) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, spanObserver) {
	if es.tracingCollector == nil {
		return ctx, spanObserver{}
	}

	spanCtx, span := es.tracingCollector.StartSpan(ctx, name, attrs)

	return spanCtx, spanObserver{collector: es.tracingCollector, span: span}
}

func (es EventStore) startQuerySpan(ctx context.Context) (context.Context, spanObserver) {
	return es.startSpan(ctx, spanNameQuery, map[string]string{spanAttrOperation: operationQuery})
}

func (es EventStore) startAppendSpan(
	ctx context.Context,
	events eventstore.StorableEvents,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (context.Context, spanObserver) {

	return es.startSpan(ctx, spanNameAppend, map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrEventCount:  fmt.Sprintf("%d", len(events)),
		spanAttrEventType:   events[0].EventType,
		spanAttrExpectedSeq: fmt.Sprintf("%d", expectedMaxSequenceNumber),
	})
}

func (so spanObserver) finishSuccess(d time.Duration, attrs map[string]string) {
	if so.span == nil {
		return
	}

	so.span.SetStatus(statusSuccess)
	so.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.3f", toMilliseconds(d)))
	so.collector.FinishSpan(so.span, statusSuccess, attrs)
}

func (so spanObserver) finishError(errorType string, d time.Duration) {
	if so.span == nil {
		return
	}

	so.span.SetStatus(statusError)
	so.span.AddAttribute(spanAttrErrorType, errorType)
	if d > 0 {
		so.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.3f", toMilliseconds(d)))
	}
	so.collector.FinishSpan(so.span, statusError, map[string]string{spanAttrErrorType: errorType})
}
