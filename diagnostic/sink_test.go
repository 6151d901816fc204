package diagnostic_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"struct-mapper/diagnostic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var sample = diagnostic.Diagnostic{
	TypePair:   "store.Customer -> warehouse.Customer",
	Field:      "ID",
	SourceType: "uuid.UUID",
	TargetType: "int",
	Reason:     diagnostic.ReasonIncompatible,
}

func TestCollector(t *testing.T) {
	t.Parallel()

	var c diagnostic.Collector

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(sample)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, c.Len())

	records := c.Diagnostics()
	records[0].Field = "mutated"
	assert.Equal(t, "ID", c.Diagnostics()[0].Field, "Diagnostics returns a copy")

	c.Reset()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Diagnostics())
}

func TestTee(t *testing.T) {
	t.Parallel()

	var first, second diagnostic.Collector

	var calls int
	sink := diagnostic.Tee(&first, nil, diagnostic.Func(func(diagnostic.Diagnostic) { calls++ }), &second)
	sink.Report(sample)
	sink.Report(sample)

	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, 2, calls)

	diagnostic.Discard.Report(sample)
}

func TestZapSink(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	sink := diagnostic.NewZapSink(zap.New(core))

	failed := sample
	failed.Reason = diagnostic.ReasonRejected
	failed.Err = errors.New("strconv.ParseInt: parsing \"x\": invalid syntax")

	sink.Report(sample)
	sink.WithLevel(zapcore.DebugLevel).Report(failed)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "Cannot set field", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "ID", ctx["field"])
	assert.Equal(t, "int", ctx["target_type"])
	assert.Equal(t, "uuid.UUID", ctx["source_type"])
	assert.Equal(t, "incompatible", ctx["reason"])
	assert.NotContains(t, ctx, "error")

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Contains(t, entries[1].ContextMap()["error"], "invalid syntax")
}

func TestZapSink_LevelFiltered(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	diagnostic.NewZapSink(zap.New(core)).Report(sample)
	assert.Zero(t, logs.Len())

	assert.NotPanics(t, func() { diagnostic.NewZapSink(nil).Report(sample) })
}

func TestMeterSink(t *testing.T) {
	t.Parallel()

	sink, err := diagnostic.NewMeterSink(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	assert.NotPanics(t, func() { sink.Report(sample) })
}

func TestSpanSink(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "map customers")
	sink := diagnostic.NewSpanSink(span)

	failed := sample
	failed.Err = errors.New("boom")
	sink.Report(sample)
	sink.Report(failed)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	events := ended[0].Events()
	require.Len(t, events, 2)
	assert.Equal(t, diagnostic.EventName, events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.String("structmap.field", "ID"))
	assert.Contains(t, events[0].Attributes, attribute.String("structmap.reason", "incompatible"))
	assert.Contains(t, events[1].Attributes, attribute.String("structmap.error", "boom"))
}
