// Package buslog mirrors log records onto the event bus so the host sees
// warnings next to the conversation.
package buslog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sat8bit/roundtable/bus"
)

// BusHandler is a slog.Handler that broadcasts records at or above level as
// notices, then passes every record to next.
type BusHandler struct {
	bus   bus.Bus
	next  slog.Handler
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewBusHandler creates a BusHandler. next may be nil to only broadcast.
func NewBusHandler(b bus.Bus, next slog.Handler, level slog.Leveler) *BusHandler {
	if level == nil {
		level = slog.LevelWarn
	}
	return &BusHandler{bus: b, next: next, level: level}
}

func (h *BusHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level.Level() {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

func (h *BusHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level.Level() {
		// A closed bus only means nobody is watching anymore.
		_ = h.bus.Broadcast(&bus.Event{
			Kind: bus.KindNotice,
			Text: h.format(r),
			At:   r.Time,
		})
	}
	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *BusHandler) format(r slog.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", r.Level, r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " %s=%v", h.qualify(a.Key), a.Value)
		return true
	})
	return sb.String()
}

func (h *BusHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *BusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

func (h *BusHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.qualify(name)
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}
