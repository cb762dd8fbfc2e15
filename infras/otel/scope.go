package otel

import (
	"careops/shared/failure"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	clientErrorEvent   = "client_error"
	statusCodeKey      = "http.status_code"
	errorMessageKey    = "error.message"
	attributeTimeLayout = time.RFC3339
)

// Scope is one span around a handler, service or repository call.
type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{span: span}
}

func (s *scopeImpl) End() {
	s.span.End()
}

// TraceError marks the span failed. 4xx failures such as a missing booking
// or a bad date are recorded as an event and leave the span status untouched.
func (s *scopeImpl) TraceError(err error) {
	if failure.IsClientError(err) {
		s.span.AddEvent(clientErrorEvent, oteltrace.WithAttributes(
			attribute.Int(statusCodeKey, failure.GetCode(err)),
			attribute.String(errorMessageKey, err.Error()),
		))

		return
	}

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *scopeImpl) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, toAttribute(key, value))
	}

	s.span.SetAttributes(kvs...)
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		// prices are integer cents
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case time.Time:
		return attribute.String(key, val.Format(attributeTimeLayout))
	case *string:
		if val == nil {
			return attribute.String(key, "")
		}

		return attribute.String(key, *val)
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}
