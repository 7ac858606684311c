package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"chatty":  slog.LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup("debug", "json", &buf)
	logger.Debug("digest finished", "strategy", "pbkdf2")

	out := buf.String()
	if !strings.Contains(out, `"msg":"digest finished"`) || !strings.Contains(out, `"strategy":"pbkdf2"`) {
		t.Errorf("Unexpected JSON log output: %s", out)
	}
}

func TestSetupFiltersLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup("error", "text", &buf)
	slog.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Info should be filtered at error level, got %q", buf.String())
	}
}
