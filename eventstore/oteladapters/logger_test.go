package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/borrowdesk/eventstore/oteladapters"
)

func Test_SlogBridgeLogger_WithHandler_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message", "BookID", "b-1")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"msg":"debug message"`)
	assert.Contains(t, output, `"BookID":"b-1"`)
	assert.Contains(t, output, `"msg":"info message"`)
	assert.Contains(t, output, `"msg":"warn message"`)
	assert.Contains(t, output, `"error":"boom"`)
	assert.Same(t, logger.Slog(), logger.Slog())
}

func Test_SlogBridgeLogger_WithGlobalProvider_DoesNotPanic(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("borrowdesk-test")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "fine issued", "FineID", "f-1", "audit", true)
	})
}

func Test_OTelLogger_AcceptsMixedAttributeTypes(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		logger.InfoContext(
			context.Background(),
			"events appended",
			"event_count", 2,
			"duration_ms", 1.25,
			"expected_sequence", uint(7),
			"audit", true,
			"error", errors.New("boom"),
			"dangling",
		)
	})
}
