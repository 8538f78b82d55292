package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"DEBUG", slog.LevelDebug, true},
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"WARNING", slog.LevelWarn, true},
		{"Error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "mcscan.log")

	logger, closeFn := newLogger(&console, path, "DEBUG")
	logger.Debug("Loaded settings.", "path", "config.toml")
	closeFn()

	assert.Contains(t, console.String(), "Loaded settings.")
	assert.Regexp(t, regexp.MustCompile(`time="\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}"`), console.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Loaded settings.")
	assert.Contains(t, string(data), "path=config.toml")
}

func TestNewConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger, closeFn := newLogger(&console, "", "ERROR")
	defer closeFn()

	logger.Info("hidden")
	logger.Error("shown")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestNewInvalidLevelWarns(t *testing.T) {
	var console bytes.Buffer
	logger, closeFn := newLogger(&console, "", "loud")
	defer closeFn()

	assert.Contains(t, console.String(), "Invalid log level specified, defaulting to INFO.")
	assert.Contains(t, console.String(), "provided_level=loud")

	console.Reset()
	logger.Debug("not at info")
	assert.Empty(t, console.String())
}
