package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"moviekit/internal/config"
	"moviekit/internal/logging"
)

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerRendersComponentAndMultilineOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Console: &buf, RunID: "run-1"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "organizer").Info("command finished",
		logging.String("output", "line one\nline two"),
		logging.Int("exit_code", 0),
	)

	out := buf.String()
	for _, want := range []string{"INFO [organizer] – command finished", "        line one", "        line two", "- exit_code: 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "run-1") {
		t.Fatalf("run id should be hidden from info console output:\n%s", out)
	}
}

func TestJSONFileCarriesRunID(t *testing.T) {
	var file bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", File: &file, RunID: "abc"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("careful", logging.String("file", "a.mkv"))

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(file.Bytes()), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, file.String())
	}
	if record["run_id"] != "abc" || record["level"] != "warn" || record["file"] != "a.mkv" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", File: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestOpenWritesRotatingLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	session, err := logging.Open(&cfg, logging.SessionOptions{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if session.RunID == "" {
		t.Fatal("expected run id")
	}
	session.Logger.Info("hello from test")
	if err := session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "moviekit.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Fatalf("log file missing message: %q", data)
	}
	if session.LogDir() != cfg.Paths.LogDir {
		t.Fatalf("LogDir() = %q", session.LogDir())
	}
}

func TestPruneOlderThan(t *testing.T) {
	dir := t.TempDir()
	oldFile := filepath.Join(dir, "old.log")
	newFile := filepath.Join(dir, "new.log")
	other := filepath.Join(dir, "keep.txt")
	for _, path := range []string{oldFile, newFile, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().AddDate(0, 0, -10)
	for _, path := range []string{oldFile, other} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatal(err)
		}
	}

	if removed := logging.PruneOlderThan(logging.NewNop(), dir, "*.log", 5); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Fatalf("expected old log removed, stat err = %v", err)
	}
	for _, path := range []string{newFile, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s kept: %v", path, err)
		}
	}
	if removed := logging.PruneOlderThan(nil, dir, "*.log", 0); removed != 0 {
		t.Fatalf("retention 0 should disable pruning, removed %d", removed)
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Console: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := logging.WithRunID(context.Background(), "ctx-run")
	logging.WithContext(ctx, logger).Debug("scoped")
	if !strings.Contains(buf.String(), "ctx-run") {
		t.Fatalf("expected run id from context in debug output: %q", buf.String())
	}
}
