package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("failed to decode log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestFieldsAreWritten(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug")

	l.Info("resource fetched", Fields(FieldResource, "weather", FieldStatus, 200))

	m := decodeLine(t, &buf)
	if m["message"] != "resource fetched" {
		t.Errorf("expected message, got %v", m["message"])
	}
	if m[FieldResource] != "weather" {
		t.Errorf("expected resource=weather, got %v", m[FieldResource])
	}
	if m[FieldStatus] != float64(200) {
		t.Errorf("expected status=200, got %v", m[FieldStatus])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info").WithComponent("httpresource").WithError(errors.New("boom"))

	l.Error("fetch failed")

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "httpresource" {
		t.Errorf("expected component field, got %v", m[FieldComponent])
	}
	if m["error"] != "boom" {
		t.Errorf("expected error field, got %v", m["error"])
	}
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected same logger when context carries no span")
	}

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	l.WithContext(ctx).Info("traced")
	m := decodeLine(t, &buf)
	if m[FieldTraceID] != span.SpanContext().TraceID().String() {
		t.Errorf("expected trace id %s, got %v", span.SpanContext().TraceID(), m[FieldTraceID])
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"json", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud"}, true},
		{"bad format", Config{Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRegistryGet(t *testing.T) {
	l := NewNop()
	Register("registered-test", l)
	if Get("registered-test") != l {
		t.Error("expected registered logger")
	}
	if Get("unregistered-test") == nil {
		t.Error("expected fallback logger for unregistered name")
	}
}

func TestFieldsOddArgs(t *testing.T) {
	m := Fields("a", 1, "dangling")
	if len(m) != 1 || m["a"] != 1 {
		t.Errorf("expected only complete pairs, got %v", m)
	}
}
