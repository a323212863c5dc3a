package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "warn")

		logger.Info("hidden")
		logger.Warn("shown", "key", "value")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info message should be filtered at warn level: %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
			t.Errorf("expected warn message with key/value, got %q", out)
		}
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "chatty")

		logger.Debug("debug")
		logger.Info("info")

		out := buf.String()
		if strings.Contains(out, "debug") {
			t.Errorf("debug should be filtered, got %q", out)
		}
		if !strings.Contains(out, "info") {
			t.Errorf("expected info line, got %q", out)
		}
	})
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("expected a logger for nil input")
	}

	var buf bytes.Buffer
	logger := New(&buf, "info")
	if OrDiscard(logger) != logger {
		t.Error("expected the same logger back")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eventscout.log")

	logger, closer, err := OpenFile(path, "info")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	logger.Info("written to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected log line in file, got %q", data)
	}
}
