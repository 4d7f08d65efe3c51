package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_Info(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(1, "store", "test message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[item-1]")
	assert.Contains(t, string(content), "[store]")
	assert.Contains(t, string(content), "test message")

	itemContent, err := os.ReadFile(domain.ItemLogPath(dataDir, 1))
	require.NoError(t, err)
	assert.Contains(t, string(itemContent), "[item-1]")
	assert.Contains(t, string(itemContent), "test message")
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(0, "system", "global message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")
	assert.Contains(t, string(content), "global message")

	// No item-0 log file
	_, err = os.Stat(domain.ItemLogPath(dataDir, 0))
	assert.True(t, os.IsNotExist(err))
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug(1, "store", "debug message")
	logger.Info(1, "store", "info message")
	logger.Warn(1, "store", "warn message")
	logger.Error(1, "store", "error message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Must not panic or create files
	logger.Info(1, "store", "test message")
	logger.Error(0, "store", "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC) }
	defer func() { _ = logger.Close() }()

	logger.Info(42, "usecase", `task created: "my task"`)

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [item-42] [usecase] task created: "my task"`, lines[0])
}

func TestLogger_MultipleItemFiles(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info(1, "store", "message for item 1")
	logger.Info(2, "store", "message for item 2")
	logger.Info(1, "store", "another message for item 1")

	globalContent, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(globalContent), "message for item 1")
	assert.Contains(t, string(globalContent), "message for item 2")

	item1, err := os.ReadFile(domain.ItemLogPath(dataDir, 1))
	require.NoError(t, err)
	assert.Contains(t, string(item1), "another message for item 1")
	assert.NotContains(t, string(item1), "message for item 2")

	item2, err := os.ReadFile(domain.ItemLogPath(dataDir, 2))
	require.NoError(t, err)
	assert.Contains(t, string(item2), "message for item 2")
	assert.NotContains(t, string(item2), "message for item 1")
}

func TestLogger_WithConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New("", slog.LevelInfo).WithConsole(&buf)

	logger.Debug(0, "http", "hidden")
	logger.Info(0, "http", "GET /tasks 200")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INFO] [global] [http] GET /tasks 200")
}

func TestLogger_Close(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)

	logger.Info(1, "store", "test message")

	assert.NoError(t, logger.Close())
	assert.FileExists(t, domain.GlobalLogPath(dataDir))
	assert.FileExists(t, domain.ItemLogPath(dataDir, 1))
}

func TestLogger_CreateLogsDir(t *testing.T) {
	dataDir := t.TempDir()
	logsDir := filepath.Join(dataDir, "logs")

	_, err := os.Stat(logsDir)
	assert.True(t, os.IsNotExist(err))

	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()
	logger.Info(1, "store", "test message")

	stat, err := os.Stat(logsDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestHandler_WithSlogLogger(t *testing.T) {
	dataDir := t.TempDir()
	h := NewHandler(dataDir, slog.LevelInfo)
	defer func() { _ = h.sinks.close() }()

	logger := slog.New(h).With("item", 7, "category", "http")
	logger.Info("POST /subtasks", "status", 201)
	logger.Debug("dropped")

	content, err := os.ReadFile(domain.ItemLogPath(dataDir, 7))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO] [item-7] [http] POST /subtasks status=201")
	assert.NotContains(t, string(content), "dropped")

	global, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, string(content), string(global))
}

func TestHandler_UnwritableDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(dataDir, nil, 0o600))

	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	assert.Error(t, logger.handler.Handle(context.Background(), r))

	// The domain adapter swallows the write error.
	logger.Info(1, "store", "still fine")
}
