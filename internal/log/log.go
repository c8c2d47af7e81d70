package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// enabledSections are the sections whose records below slog.LevelWarn are emitted
var enabledSections = []string{
	"frontend",
	"kindcheck",
	"rename",
	"cmd",
}

var level = new(slog.LevelVar)

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var DefaultLogger = slog.New(&filteringHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})

func init() {
	level.Set(slog.LevelWarn)
}

// SetLevel changes the minimum level of every logger derived from DefaultLogger
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level is the current minimum level of DefaultLogger
func Level() slog.Level {
	return level.Level()
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	// sections set through With are kept here rather than on the record
	wantSection := len(f.sections) > 0
	if !wantSection {
		record.Attrs(func(attr slog.Attr) bool {
			wantSection = wantSection || attr.Key == "section" && isEnabled(attr.Value.String())
			// iterate as long as we have not found our section
			return !wantSection
		})
	}
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func isEnabled(section string) bool {
	return slices.ContainsFunc(enabledSections, func(enabled string) bool {
		return strings.HasPrefix(section, enabled)
	})
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var newAttrs []slog.Attr
	sections := slices.Clone(f.sections)

	// keep the section attribute in filteringHandler
	for _, attr := range attrs {
		if attr.Key == "section" && isEnabled(attr.Value.String()) {
			sections = append(sections, attr.Value.String())
		}
		newAttrs = append(newAttrs, attr)
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(newAttrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
