// Package logging writes tracker log entries through a slog.Handler that fans
// each record out to the global log (<data dir>/logs/tracker.log), to the
// owning item's log (<data dir>/logs/item-N.log) and optionally to a console.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger adapts domain.Logger calls to records for a Handler.
type Logger struct {
	handler *Handler
	now     func() time.Time
}

// New creates a Logger writing under dataDir. An empty dataDir disables files.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		handler: NewHandler(dataDir, level),
		now:     time.Now,
	}
}

// WithConsole mirrors every entry that passes the level filter to w.
func (l *Logger) WithConsole(w io.Writer) *Logger {
	l.handler.sinks.setConsole(w)
	return l
}

// Close closes all open log files.
func (l *Logger) Close() error {
	return l.handler.sinks.close()
}

// ParseLevel parses a log level string into slog.Level. Unknown values mean info.
func ParseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (l *Logger) log(level slog.Level, itemID int, category, msg string) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(l.now(), level, msg, 0)
	r.AddAttrs(slog.Int(itemKey, itemID), slog.String(categoryKey, category))
	// A failed log write must not fail the operation being logged.
	_ = l.handler.Handle(ctx, r)
}

// Debug logs a debug message.
func (l *Logger) Debug(itemID int, category, msg string) {
	l.log(slog.LevelDebug, itemID, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(itemID int, category, msg string) {
	l.log(slog.LevelInfo, itemID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(itemID int, category, msg string) {
	l.log(slog.LevelWarn, itemID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(itemID int, category, msg string) {
	l.log(slog.LevelError, itemID, category, msg)
}
