package kafka

import (
	"context"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goOtel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestEncode_InjectsTraceContext(t *testing.T) {
	previous := goOtel.GetTextMapPropagator()
	goOtel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { goOtel.SetTextMapPropagator(previous) })

	provider := sdktrace.NewTracerProvider()
	ctx, span := provider.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	batch, err := encode(ctx, "careops.alerts", []Message{{Key: "item-1", Value: map[string]int{"quantity": 2}}})
	require.NoError(t, err)
	require.Len(t, batch, 1)

	carrier := headerCarrier{headers: &batch[0].Headers}
	assert.Contains(t, carrier.Get("traceparent"), span.SpanContext().TraceID().String())
}

func TestEncode_WithoutSpanAddsNoHeaders(t *testing.T) {
	batch, err := encode(context.Background(), "careops.alerts", []Message{{Key: "item-1", Value: "v"}})

	require.NoError(t, err)
	assert.Empty(t, batch[0].Headers)
}

func TestHeaderCarrier(t *testing.T) {
	carrier := headerCarrier{headers: &[]kafkaGo.Header{}}

	carrier.Set("traceparent", "a")
	carrier.Set("tracestate", "b")
	carrier.Set("traceparent", "c")

	assert.Equal(t, "c", carrier.Get("traceparent"))
	assert.Equal(t, "", carrier.Get("missing"))
	assert.Equal(t, []string{"traceparent", "tracestate"}, carrier.Keys())
}
