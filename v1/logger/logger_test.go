package logger

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedClient(tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &LoggerClient{Zap: zap.New(core), tracingEnabled: tracing}, logs
}

func TestConvertToZapFieldsIncludesError(t *testing.T) {
	client, logs := newObservedClient(false)

	opErr := errors.New("decode failed")
	client.Error("operation failed", opErr, map[string]interface{}{
		"field_name": "events",
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["error"] != "decode failed" {
		t.Errorf("expected error field, got %#v", fields)
	}
	if fields["field_name"] != "events" {
		t.Errorf("expected field_name=events, got %#v", fields)
	}
}

func TestConvertToZapFieldsLaterMapsOverride(t *testing.T) {
	client, logs := newObservedClient(false)

	client.Info("msg", nil,
		map[string]interface{}{"key": "first"},
		map[string]interface{}{"key": "second"},
	)

	fields := logs.All()[0].ContextMap()
	if fields["key"] != "second" {
		t.Errorf("expected later map to win, got %v", fields["key"])
	}
}

func TestNilErrorAddsNoErrorField(t *testing.T) {
	client, logs := newObservedClient(false)

	client.Warn("warning only", nil, nil)

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["error"]; ok {
		t.Errorf("did not expect error field, got %#v", fields)
	}
}

func TestLevels(t *testing.T) {
	client, logs := newObservedClient(false)

	client.Debug("d", nil)
	client.Info("i", nil)
	client.Warn("w", nil)
	client.Error("e", nil)

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	wantMsgs := []string{"d", "i", "w", "e"}
	for i, e := range entries {
		if e.Message != wantMsgs[i] {
			t.Errorf("entry %d: expected message %q, got %q", i, wantMsgs[i], e.Message)
		}
	}
}

func TestWithContextWithoutSpanAddsNoTraceFields(t *testing.T) {
	client, logs := newObservedClient(true)

	client.InfoWithContext(context.Background(), "no span", nil)

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["trace_id"]; ok {
		t.Errorf("did not expect trace_id without an active span, got %#v", fields)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != Info {
		t.Errorf("expected default level info, got %q", cfg.Level)
	}
	if cfg.ServiceName == "" {
		t.Errorf("expected a default service name")
	}
}
