// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// slogBridge is a slog.Handler that forwards records to zerolog. The
// supervisor tree logs through sutureslog, which only speaks slog.
type slogBridge struct {
	zl     zerolog.Logger
	attrs  []slog.Attr
	prefix string
}

// NewSlogLogger returns a *slog.Logger writing through the global zerolog logger,
// tagged with the given component.
func NewSlogLogger(component string) *slog.Logger {
	zl := Logger()
	if component != "" {
		zl = zl.With().Str("component", component).Logger()
	}
	return slog.New(&slogBridge{zl: zl})
}

// newSlogBridge is used by tests to route slog records to a captured logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newSlogBridge(zl zerolog.Logger) *slogBridge {
	return &slogBridge{zl: zl}
}

func (b *slogBridge) Enabled(_ context.Context, level slog.Level) bool {
	zlvl := toZerologLevel(level)
	return zlvl >= b.zl.GetLevel() && zlvl >= zerolog.GlobalLevel()
}

//nolint:gocritic // slog.Handler requires slog.Record by value
func (b *slogBridge) Handle(_ context.Context, rec slog.Record) error {
	ev := b.zl.WithLevel(toZerologLevel(rec.Level))
	if ev == nil {
		return nil
	}
	for _, a := range b.attrs {
		ev = appendAttr(ev, b.prefix, a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		ev = appendAttr(ev, b.prefix, a)
		return true
	})
	ev.Msg(rec.Message)
	return nil
}

func (b *slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	merged = append(merged, b.attrs...)
	merged = append(merged, attrs...)
	return &slogBridge{zl: b.zl, attrs: merged, prefix: b.prefix}
}

func (b *slogBridge) WithGroup(name string) slog.Handler {
	if name == "" {
		return b
	}
	return &slogBridge{zl: b.zl, attrs: b.attrs, prefix: b.prefix + name + "."}
}

func appendAttr(ev *zerolog.Event, prefix string, a slog.Attr) *zerolog.Event {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return ev
	}
	key := prefix + a.Key

	switch a.Value.Kind() {
	case slog.KindGroup:
		sub := prefix
		if a.Key != "" {
			sub = key + "."
		}
		for _, ga := range a.Value.Group() {
			ev = appendAttr(ev, sub, ga)
		}
		return ev
	case slog.KindString:
		return ev.Str(key, a.Value.String())
	case slog.KindInt64:
		return ev.Int64(key, a.Value.Int64())
	case slog.KindUint64:
		return ev.Uint64(key, a.Value.Uint64())
	case slog.KindFloat64:
		return ev.Float64(key, a.Value.Float64())
	case slog.KindBool:
		return ev.Bool(key, a.Value.Bool())
	case slog.KindDuration:
		return ev.Dur(key, a.Value.Duration())
	case slog.KindTime:
		return ev.Time(key, a.Value.Time())
	default:
		if err, ok := a.Value.Any().(error); ok {
			return ev.AnErr(strings.TrimSuffix(key, "."), err)
		}
		return ev.Interface(key, a.Value.Any())
	}
}

func toZerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelDebug:
		return zerolog.TraceLevel
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
