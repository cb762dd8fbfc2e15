package otel_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"careops/infras/otel"
	"careops/shared/failure"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(t.Context(), "service.booking.Update")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvent  string
	}{
		{
			name:       "server error fails the span",
			err:        errors.New("pq: connection refused"),
			wantStatus: codes.Error,
			wantEvent:  "exception",
		},
		{
			name:       "client error is only an event",
			err:        fmt.Errorf("update: %w", failure.NotFound("booking not found")),
			wantStatus: codes.Unset,
			wantEvent:  "client_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := record(t, func(scope otel.Scope) { scope.TraceIfError(tt.err) })

			assert.Equal(t, tt.wantStatus, span.Status().Code)
			require.Len(t, span.Events(), 1)
			assert.Equal(t, tt.wantEvent, span.Events()[0].Name)
		})
	}
}

func TestScope_TraceIfError_Nil(t *testing.T) {
	span := record(t, func(scope otel.Scope) { scope.TraceIfError(nil) })

	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Empty(t, span.Events())
}

func TestScope_SetAttributes(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	notes := "ring twice"

	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.price":  int64(15000),
			"booking.start":  start,
			"booking.notes":  &notes,
			"booking.paid":   false,
			"booking.status": "confirmed",
		})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(15000), attrs["booking.price"].AsInt64())
	assert.Equal(t, "2026-03-02T09:00:00Z", attrs["booking.start"].AsString())
	assert.Equal(t, "ring twice", attrs["booking.notes"].AsString())
	assert.False(t, attrs["booking.paid"].AsBool())
	assert.Equal(t, "confirmed", attrs["booking.status"].AsString())
}
