package observes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewTracerWithoutEndpoint(t *testing.T) {
	shutdown, err := NewTracer(&TracerOption{Name: "teamops"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, err = NewTracer(nil)
	assert.Error(t, err)
}

func TestStartAndEndSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := StartSpan(context.Background(), "pdf.render", attribute.String("template", "task-details"))
	assert.NotEmpty(t, TraceID(ctx))
	EndSpan(span, errors.New("boom"))

	_, ok := StartSpan(context.Background(), "ok")
	EndSpan(ok, nil)

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "pdf.render", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, codes.Ok, ended[1].Status().Code)
}

func TestTraceIDWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}

func TestSentryDisabled(t *testing.T) {
	assert.NoError(t, NewSentry(nil))
	assert.NoError(t, NewSentry(&SentryOptions{}))
	CaptureError(context.Background(), errors.New("ignored"), nil)
	assert.True(t, FlushSentry(0))
}
