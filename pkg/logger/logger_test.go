package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize text logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := InitWithFormat("json"); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := InitWithFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerJSONRecord(t *testing.T) {
	var buf bytes.Buffer
	if err := initWithWriter(&buf, "json"); err != nil {
		t.Fatalf("init: %v", err)
	}

	Get().Named("site").Info(context.Background(), "page rendered", String("page", "home"), Int("status", 200))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("record is not json: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "page rendered" {
		t.Errorf("unexpected msg %v", rec["msg"])
	}
	if rec["logger"] != "site" {
		t.Errorf("expected logger name, got %v", rec["logger"])
	}
	if rec["page"] != "home" {
		t.Errorf("expected page field, got %v", rec["page"])
	}
	if src, _ := rec["source"].(string); !strings.Contains(src, "logger_test.go") {
		t.Errorf("expected source to point at the test file, got %q", src)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := initWithWriter(&buf, "text"); err != nil {
		t.Fatalf("init: %v", err)
	}

	Get().Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	Get().Debug(context.Background(), "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug record missing: %q", buf.String())
	}

	if err := SetLevelString("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	if err := initWithWriter(&buf, "text"); err != nil {
		t.Fatalf("init: %v", err)
	}

	if FromContext(context.Background()) != Get() {
		t.Fatal("expected global logger without a scoped one")
	}

	scoped := Get().With(String("request_id", "req-1"))
	ctx := WithContext(context.Background(), scoped)
	FromContext(ctx).Warn(ctx, "slow upstream")

	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Fatalf("scoped field missing: %q", buf.String())
	}
}
