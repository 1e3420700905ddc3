package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewJSONWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "debug", Format: "json"}, "svc")

	l.WithComponent("singleton").Debug("instance constructed", Fields(FieldStrategy, "holder", FieldBalance, 1000.0))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "instance constructed" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry[FieldComponent] != "singleton" {
		t.Errorf("expected component field, got %v", entry[FieldComponent])
	}
	if entry[FieldStrategy] != "holder" {
		t.Errorf("expected strategy field, got %v", entry[FieldStrategy])
	}
	if entry[FieldBalance] != 1000.0 {
		t.Errorf("expected balance field, got %v", entry[FieldBalance])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "warn", Format: "json"}, "svc")

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn to be written, got %q", buf.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "invalid-level", Format: "json"}, "test")
	l.Debug("dropped")
	l.Info("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("expected invalid level to fall back to info")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("expected info message to be written")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "info", Format: "console", NoColor: true}, "account-client")
	l.Info("hello", Fields("k", "v"))

	out := buf.String()
	if !strings.Contains(out, "[ACC][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "k:") {
		t.Errorf("expected field name formatting, got %q", out)
	}
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("nothing")
	l.Error("nothing")
}

func TestInit(t *testing.T) {
	cfg := Config{Level: "info", Format: "json", Output: "discard", ServiceName: "init-test"}
	Init(&cfg)
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "init-test" {
		t.Errorf("expected service 'init-test', got %q", gl.service)
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewNop()
	SetGlobalLogger(l)
	if got := GetGlobalLogger(); got != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
	// Should not panic
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithComponent("x").Info("component msg")
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger.Store(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
	SetGlobalLogger(NewNop())
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"valid disabled", Config{Level: "disabled", Format: "pretty"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(f) != 2 || f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields %v", f)
	}

	ef := ErrorFields("deposit", errors.New("boom"))
	if ef[FieldOperation] != "deposit" || ef[FieldError] != "boom" {
		t.Errorf("unexpected error fields %v", ef)
	}

	df := DurationFields("stress", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
}
