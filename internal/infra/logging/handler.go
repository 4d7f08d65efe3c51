package logging

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Attribute keys that route and label a record.
const (
	itemKey     = "item"
	categoryKey = "category"
)

// Handler is a slog.Handler producing lines of the form
//
//	[2025-12-30 09:32:51] [INFO] [item-1] [category] message key=value
//
// An "item" attribute above zero also routes the line to that item's file.
type Handler struct {
	sinks *sinks
	level slog.Leveler
	attrs []slog.Attr
}

// Ensure Handler implements slog.Handler.
var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a Handler writing under dataDir.
func NewHandler(dataDir string, level slog.Leveler) *Handler {
	return &Handler{
		sinks: newSinks(dataDir),
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	e := entry{time: r.Time, level: r.Level, msg: r.Message}
	for _, a := range h.attrs {
		e.apply(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		e.apply(a)
		return true
	})
	return h.sinks.write(e.itemID, e.line())
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		sinks: h.sinks,
		level: h.level,
		attrs: append(slices.Clip(h.attrs), attrs...),
	}
}

// WithGroup implements slog.Handler. Lines are flat, so groups are ignored.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

// entry is one formatted record.
type entry struct {
	time     time.Time
	msg      string
	category string
	extra    []string
	level    slog.Level
	itemID   int
}

func (e *entry) apply(a slog.Attr) {
	switch a.Key {
	case itemKey:
		if a.Value.Kind() == slog.KindInt64 {
			e.itemID = int(a.Value.Int64())
		}
	case categoryKey:
		e.category = a.Value.String()
	default:
		e.extra = append(e.extra, a.Key+"="+a.Value.String())
	}
}

func (e entry) line() string {
	scope := "global"
	if e.itemID > 0 {
		scope = "item-" + strconv.Itoa(e.itemID)
	}

	var b strings.Builder
	b.WriteString("[" + e.time.Format(time.DateTime) + "] ")
	b.WriteString("[" + e.level.String() + "] ")
	b.WriteString("[" + scope + "] ")
	b.WriteString("[" + e.category + "] ")
	b.WriteString(e.msg)
	for _, kv := range e.extra {
		b.WriteString(" " + kv)
	}
	b.WriteByte('\n')
	return b.String()
}
