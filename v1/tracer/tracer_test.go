package tracer

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	traceSpan "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

// newRecordingTracer builds a Tracer whose spans are captured in memory.
func newRecordingTracer() (*Tracer, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(trace.WithSyncer(exporter))
	return &Tracer{tracer: tp}, exporter
}

func TestNewClientStartsValidSpans(t *testing.T) {
	log := NewMockLogger(gomock.NewController(t))
	tr := NewClient(Config{ServiceName: "test-service"}, log)
	if tr == nil {
		t.Fatal("NewClient() returned nil")
	}

	ctx, span := tr.StartSpan(context.Background(), "unit-test-span")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("span context is not valid")
	}
	if got := traceSpan.SpanContextFromContext(ctx); !got.Equal(span.SpanContext()) {
		t.Error("returned context does not carry the started span")
	}
}

func TestStartSpanParentsChildSpans(t *testing.T) {
	tr, exporter := newRecordingTracer()

	ctx, parent := tr.StartSpan(context.Background(), "parent")
	_, child := tr.StartSpan(ctx, "child")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("exported %d spans, want 2", len(spans))
	}
	// Syncer exports on End, so the child arrives first.
	if spans[0].Parent.SpanID() != spans[1].SpanContext.SpanID() {
		t.Error("child span is not parented to the enclosing span")
	}
	if spans[0].SpanContext.TraceID() != spans[1].SpanContext.TraceID() {
		t.Error("parent and child spans have different trace IDs")
	}
}

func TestRecordErrorOnSpan(t *testing.T) {
	tr, exporter := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "failing-op")
	tr.RecordErrorOnSpan(span, errors.New("backend unavailable"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want error", spans[0].Status.Code)
	}
	if spans[0].Status.Description != "backend unavailable" {
		t.Errorf("span status description = %q", spans[0].Status.Description)
	}
	if len(spans[0].Events) == 0 {
		t.Error("no error event recorded on span")
	}
}

func TestSetAttributes(t *testing.T) {
	tr, exporter := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "attributed-op")
	tr.SetAttributes(span, map[string]interface{}{
		"collection": "documents",
		"offset":     40,
		"total":      int64(125),
		"score":      0.25,
		"exact":      true,
		"other":      []string{"x"},
	})
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, want 1", len(spans))
	}

	got := make(map[attribute.Key]attribute.Value, len(spans[0].Attributes))
	for _, kv := range spans[0].Attributes {
		got[kv.Key] = kv.Value
	}

	if got["collection"].AsString() != "documents" {
		t.Errorf("collection = %v", got["collection"])
	}
	if got["offset"].AsInt64() != 40 {
		t.Errorf("offset = %v", got["offset"])
	}
	if got["total"].AsInt64() != 125 {
		t.Errorf("total = %v", got["total"])
	}
	if got["score"].AsFloat64() != 0.25 {
		t.Errorf("score = %v", got["score"])
	}
	if !got["exact"].AsBool() {
		t.Errorf("exact = %v", got["exact"])
	}
	if got["other"].AsString() != "[x]" {
		t.Errorf("other = %v, want string fallback", got["other"])
	}
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordingTracer()

	ctx, span := tr.StartSpan(context.Background(), "upstream")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	if carrier["traceparent"] == "" {
		t.Fatal("carrier is missing traceparent header")
	}

	restored := tr.SetCarrierOnContext(context.Background(), carrier)
	sc := traceSpan.SpanContextFromContext(restored)
	if sc.TraceID() != span.SpanContext().TraceID() {
		t.Errorf("restored trace ID = %s, want %s", sc.TraceID(), span.SpanContext().TraceID())
	}
	if sc.SpanID() != span.SpanContext().SpanID() {
		t.Errorf("restored span ID = %s, want %s", sc.SpanID(), span.SpanContext().SpanID())
	}
}

func TestGetCarrierWithoutSpan(t *testing.T) {
	tr, _ := newRecordingTracer()

	carrier := tr.GetCarrier(context.Background())
	if len(carrier) != 0 {
		t.Errorf("carrier for a span-free context = %v, want empty", carrier)
	}
}
