package shared

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}

	logger.Info("hello")
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Errorf("expected log output to contain message, got %q", buf.String())
	}
}

func TestNewLoggerNilWriter(t *testing.T) {
	if NewLogger(nil) == nil {
		t.Fatal("expected logger with default writer, got nil")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ytag.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Info("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !bytes.Contains(data, []byte("written to file")) {
		t.Errorf("expected log file to contain message, got %q", string(data))
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "component", "tests")
	logger.Info("tagged")

	if !bytes.Contains(buf.Bytes(), []byte("component")) {
		t.Errorf("expected child logger fields in output, got %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	SetLogLevel(logger, log.ErrorLevel)

	logger.Info("hidden")
	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("expected info message to be suppressed, got %q", buf.String())
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
}

func TestGenerateState(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}
	if _, err := hex.DecodeString(state); err != nil {
		t.Errorf("expected hex state, got %q", state)
	}
	if len(state) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(state))
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"count": 3}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"count":3}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if !bytes.Contains(pretty, []byte("\n")) {
		t.Errorf("expected indented output, got %s", pretty)
	}
}

func TestVerifyAndReadFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	if err := os.WriteFile(valid, []byte(`{"ok": true}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := VerifyAndReadFile(valid); err != nil {
		t.Errorf("expected valid JSON to pass, got %v", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := VerifyAndReadFile(invalid); err == nil {
		t.Error("expected error for invalid JSON")
	}

	if _, err := VerifyAndReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
