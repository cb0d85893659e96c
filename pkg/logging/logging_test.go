package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupWriter(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := SetupWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "name", "Alice")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "name=Alice") {
		t.Errorf("warn message missing: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color codes for a non-terminal writer: %q", out)
	}
}

func TestNewRegularFileHasNoColor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "app.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if isTerminal(f) {
		t.Fatal("regular file reported as a terminal")
	}
	New(f, slog.LevelInfo).Info("written", "name", "Alice")

	out, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "name=Alice") {
		t.Errorf("log line missing: %q", out)
	}
	if strings.Contains(string(out), "\x1b[") {
		t.Errorf("expected no color codes for a regular file: %q", out)
	}
}
