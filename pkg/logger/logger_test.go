package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsFlowIntoOutput(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithUserID(ctx, "user-7")
	logg.Info(ctx, "hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if line["request_id"] != "req-1" {
		t.Fatalf("expected request_id in output, got %v", line["request_id"])
	}
	if line["user_id"] != "user-7" {
		t.Fatalf("expected user_id in output, got %v", line["user_id"])
	}
	if line["service"] != "test" {
		t.Fatalf("expected service field, got %v", line["service"])
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatalf("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for empty value")
	}
	if ParseLevel("bogus") != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for unknown value")
	}
}
