package diagnostic

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// EventName is the metric and span event name used for rejected fields.
const EventName = "structmap.field.rejected"

func attributes(d Diagnostic) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("structmap.types", d.TypePair),
		attribute.String("structmap.field", d.Field),
		attribute.String("structmap.source_type", d.SourceType),
		attribute.String("structmap.target_type", d.TargetType),
		attribute.String("structmap.reason", d.Reason.String()),
	}
	if d.Err != nil {
		attrs = append(attrs, attribute.String("structmap.error", d.Err.Error()))
	}

	return attrs
}

// MeterSink counts rejected fields with an OpenTelemetry counter.
type MeterSink struct {
	counter metric.Int64Counter
}

// NewMeterSink creates the counter instrument on meter.
func NewMeterSink(meter metric.Meter) (*MeterSink, error) {
	counter, err := meter.Int64Counter(
		EventName,
		metric.WithDescription("Number of source fields the mapper could not copy"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create rejected field counter: %w", err)
	}

	return &MeterSink{counter: counter}, nil
}

// Report implements Sink. Only the type pair and reason become metric attributes.
func (s *MeterSink) Report(d Diagnostic) {
	s.counter.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("structmap.types", d.TypePair),
		attribute.String("structmap.reason", d.Reason.String()),
	))
}

// SpanSink records rejected fields as events on a span.
type SpanSink struct {
	span trace.Span
}

// NewSpanSink creates a sink adding events to span.
func NewSpanSink(span trace.Span) *SpanSink {
	return &SpanSink{span: span}
}

// Report implements Sink.
func (s *SpanSink) Report(d Diagnostic) {
	s.span.AddEvent(EventName, trace.WithAttributes(attributes(d)...))
}
