package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/libload/internal/adapters/telemetry"
	"go.trai.ch/libload/internal/core/ports"
)

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerWithProvider(tp, "test"), recorder
}

func TestOTelTracer_Start(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, parent := tracer.Start(context.Background(), "resolve",
		ports.WithAttribute("coordinate", "org.example:lib:1.0"))
	_, child := tracer.Start(ctx, "fetch")

	child.SetAttribute("bytes", int64(42))
	child.SetAttribute("cache_hit", false)
	child.SetAttribute("status", 200)
	_, err := child.Write([]byte("downloading"))
	require.NoError(t, err)
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	fetch, resolve := spans[0], spans[1]
	assert.Equal(t, "fetch", fetch.Name())
	assert.Equal(t, "resolve", resolve.Name())
	assert.Equal(t, resolve.SpanContext().SpanID(), fetch.Parent().SpanID())

	assert.Contains(t, resolve.Attributes(), attribute.String("coordinate", "org.example:lib:1.0"))
	assert.Contains(t, fetch.Attributes(), attribute.Int64("bytes", 42))
	assert.Contains(t, fetch.Attributes(), attribute.Bool("cache_hit", false))
	assert.Contains(t, fetch.Attributes(), attribute.Int("status", 200))

	require.Len(t, fetch.Events(), 1)
	assert.Equal(t, "log", fetch.Events()[0].Name)
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "activate")
	span.RecordError(nil)
	span.RecordError(errors.New("not a zip archive"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "not a zip archive", spans[0].Status().Description)
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	gotCtx, span := telemetry.NewNoOpTracer().Start(ctx, "anything", ports.WithAttribute("k", "v"))

	assert.Equal(t, ctx, gotCtx)
	span.SetAttribute("k", 1)
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	span.End()
}
