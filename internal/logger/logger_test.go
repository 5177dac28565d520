package logger

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewWritesDailyFile(t *testing.T) {
	dir := t.TempDir()

	log, err := New("info", dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	log.SetOutput(io.Discard)

	log.WithField("request_id", "abc").Info("测试日志")

	today := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(DayFile(dir, today))
	if err != nil {
		t.Fatalf("Expected day file to exist: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", data, err)
	}
	if entry["msg"] != "测试日志" {
		t.Errorf("Expected message in entry, got %v", entry["msg"])
	}
	if entry["request_id"] != "abc" {
		t.Errorf("Expected field in entry, got %v", entry["request_id"])
	}
}

func TestNewLevelParsing(t *testing.T) {
	log, err := New("debug", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if log.Level != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", log.Level)
	}

	log, err = New("nonsense", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if log.Level != logrus.InfoLevel {
		t.Errorf("Expected info fallback for unknown level, got %s", log.Level)
	}
}

func TestReadDayNewestFirst(t *testing.T) {
	dir := t.TempDir()
	content := `{"msg":"first"}` + "\n" + `{"msg":"second"}` + "\n" + `{"msg":"third"}` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "2026-08-30.log"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	lines, err := ReadDay(dir, "2026-08-30")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0] != `{"msg":"third"}` || lines[2] != `{"msg":"first"}` {
		t.Errorf("Expected newest-first order, got %v", lines)
	}
}

func TestReadDayMissingFile(t *testing.T) {
	lines, err := ReadDay(t.TempDir(), "2026-01-01")
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Errorf("Expected empty slice, got %v", lines)
	}
}

func TestReadDayDefaultsToToday(t *testing.T) {
	dir := t.TempDir()
	today := time.Now().Format("2006-01-02")
	if err := os.WriteFile(DayFile(dir, today), []byte(`{"msg":"today"}`+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	lines, err := ReadDay(dir, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(lines) != 1 || lines[0] != `{"msg":"today"}` {
		t.Errorf("Expected today's entry, got %v", lines)
	}
}
