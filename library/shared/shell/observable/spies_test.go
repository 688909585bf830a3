package observable_test

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

type counterRecord struct {
	metric string
	labels map[string]string
}

type metricsCollectorSpy struct {
	mu        sync.Mutex
	counters  []counterRecord
	durations []counterRecord
}

func (s *metricsCollectorSpy) RecordDuration(metric string, _ time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durations = append(s.durations, counterRecord{metric: metric, labels: labels})
}

func (s *metricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = append(s.counters, counterRecord{metric: metric, labels: labels})
}

func (s *metricsCollectorSpy) RecordValue(string, float64, map[string]string) {}

func (s *metricsCollectorSpy) hasCounter(metric, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.counters {
		if record.metric == metric && record.labels[shell.LogAttrStatus] == status {
			return true
		}
	}

	return false
}

func (s *metricsCollectorSpy) hasDuration(metric string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.durations {
		if record.metric == metric {
			return true
		}
	}

	return false
}

type spanSpy struct {
	name        string
	finalStatus string
	attrs       map[string]string
}

func (s *spanSpy) SetStatus(status string)        { s.finalStatus = status }
func (s *spanSpy) AddAttribute(key, value string) { s.attrs[key] = value }

type tracingCollectorSpy struct {
	spans []*spanSpy
}

func (s *tracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, shell.SpanContext) {
	span := &spanSpy{name: name, attrs: attrs}
	s.spans = append(s.spans, span)

	return ctx, span
}

func (s *tracingCollectorSpy) FinishSpan(spanCtx shell.SpanContext, status string, attrs map[string]string) {
	span := spanCtx.(*spanSpy) //nolint:forcetypeassert
	span.finalStatus = status

	for k, v := range attrs {
		span.attrs[k] = v
	}
}
