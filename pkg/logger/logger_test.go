package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_StampsServiceFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Output: &buf, Service: "blood-donation-api", Version: "1.2.0"})

	log.Info().Str("request_id", "abc").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "blood-donation-api" || entry["version"] != "1.2.0" || entry["request_id"] != "abc" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestFrom(t *testing.T) {
	var scopedBuf, fallbackBuf bytes.Buffer
	scoped := New(Options{Output: &scopedBuf}).With().Str("request_id", "r-1").Logger()
	fallback := New(Options{Output: &fallbackBuf})

	ctx := WithContext(context.Background(), scoped)
	scopedLog := From(ctx, fallback)
	scopedLog.Info().Msg("scoped")
	if !bytes.Contains(scopedBuf.Bytes(), []byte(`"request_id":"r-1"`)) {
		t.Fatalf("expected the context logger to be used, got %q", scopedBuf.String())
	}

	plainLog := From(context.Background(), fallback)
	plainLog.Info().Msg("plain")
	if fallbackBuf.Len() == 0 {
		t.Fatal("expected the fallback logger without a context logger")
	}
}
