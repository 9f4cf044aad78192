package main

import (
	"context"
	"log/slog"
	"strings"

	"deedles.dev/wlr"
)

// wlrHandler sends slog records to wlroots' log so that everything
// ends up in one place.
type wlrHandler struct {
	level  slog.Level
	prefix string
	attrs  []slog.Attr
}

func initLog(level slog.Level) {
	if level <= slog.LevelDebug {
		wlr.LogInit(wlr.Debug, nil)
		return
	}
	wlr.LogInit(wlr.Info, nil)
}

func wlrLog(level slog.Level, msg string) {
	switch {
	case level >= slog.LevelWarn:
		wlr.Log(wlr.Error, "%s", msg)
	case level >= slog.LevelInfo:
		wlr.Log(wlr.Info, "%s", msg)
	default:
		wlr.Log(wlr.Debug, "%s", msg)
	}
}

func (h *wlrHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *wlrHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf strings.Builder
	buf.WriteString(r.Message)

	write := func(a slog.Attr) bool {
		buf.WriteByte(' ')
		buf.WriteString(h.prefix)
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	wlrLog(r.Level, buf.String())
	return nil
}

func (h *wlrHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &h2
}

func (h *wlrHandler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.prefix += name + "."
	return &h2
}
