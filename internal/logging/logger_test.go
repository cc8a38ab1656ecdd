package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"chartsmith/internal/config"
	"chartsmith/internal/logging"
	"chartsmith/internal/services"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	if got := readLog(t, cfg.LogFilePath()); !strings.Contains(got, "hello from config") {
		t.Fatalf("expected message in log file, got %q", got)
	}
}

func TestConsoleLoggerPrefixesGroupAndComponent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithSongGroup(context.Background(), "Band - Song")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "pipeline")).Info("converted", logging.String("file", "notes.chart"))

	got := readLog(t, logPath)
	if !strings.Contains(got, "INFO  [Band - Song] pipeline: converted file=notes.chart") {
		t.Fatalf("unexpected console line %q", got)
	}
	if strings.Contains(got, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", got)
	}
}

func TestConsoleLoggerTimestamps(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-time.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	cutoff := time.Date(2026, 3, 5, 14, 30, 0, 0, time.Local)
	logger.Info("pruned logs", slog.Time("cutoff", cutoff))

	got := readLog(t, logPath)
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} INFO `).MatchString(got) {
		t.Fatalf("expected time-of-day prefix, got %q", got)
	}
	if !strings.Contains(got, "cutoff=2026-03-05T14:30:00") {
		t.Fatalf("expected dated time attribute, got %q", got)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	if got := readLog(t, logPath); !strings.Contains(got, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", got)
	}
}

func TestConsoleLoggerQuotesValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "quote.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.WithGroup("chart").Warn("patched", logging.String("title", "Song Title"), logging.Duration("took", 2*time.Second))

	got := readLog(t, logPath)
	for _, want := range []string{`chart.title="Song Title"`, "chart.took=2s", "WARN "} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestJSONLoggerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithRunID(context.Background(), "run-9")
	logging.WithContext(ctx, logger).Info("json message", logging.String("k", "v"))

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace([]byte(readLog(t, logPath))), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload["level"] != "info" || payload["msg"] != "json message" || payload[logging.FieldRunID] != "run-9" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "song.ini update failed", "metadata_update_failed", logging.String(logging.FieldImpact, "title not written"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload[logging.FieldEventType] != "metadata_update_failed" {
		t.Fatalf("missing event type: %v", payload)
	}
	if payload[logging.FieldImpact] != "title not written" {
		t.Fatalf("caller impact overwritten: %v", payload)
	}
	if payload[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error hint: %v", payload)
	}
}

func TestErrorWithContextKeepsCallerHint(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.ErrorWithContext(logger, "input failed; aborting batch", "batch_aborted", logging.String(logging.FieldErrorHint, "rerun"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["level"] != "ERROR" {
		t.Fatalf("expected error level: %v", payload)
	}
	if payload[logging.FieldEventType] != "batch_aborted" || payload[logging.FieldErrorHint] != "rerun" {
		t.Fatalf("unexpected fields: %v", payload)
	}
}

func TestCleanupOldLogsKeepsActiveAndRecent(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "chartsmith-old.log")
	active := filepath.Join(dir, "chartsmith.log")
	recent := filepath.Join(dir, "chartsmith-recent.log")
	for _, p := range []string{old, active, recent} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -10)
	for _, p := range []string{old, active} {
		if err := os.Chtimes(p, stale, stale); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	removed := logging.CleanupOldLogs(logging.NewNop(), dir, "chartsmith*.log", active, 5)
	if len(removed) != 1 || filepath.Base(removed[0]) != "chartsmith-old.log" {
		t.Fatalf("unexpected removed set %v", removed)
	}
	for _, p := range []string{active, recent} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to remain: %v", p, err)
		}
	}
	if got := logging.CleanupOldLogs(nil, dir, "", active, 0); got != nil {
		t.Fatalf("retention 0 must not prune, got %v", got)
	}
}
