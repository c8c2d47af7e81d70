package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(&filteringHandler{
		underlying: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

func TestSectionFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	logger.With("section", "kindcheck").Debug("find kind")
	assert.Contains(t, buf.String(), "find kind")

	buf.Reset()
	logger.With("section", "backend").Debug("not shown")
	assert.Empty(t, buf.String())

	buf.Reset()
	logger.Debug("shown", "section", "rename")
	assert.Contains(t, buf.String(), "shown")
}

func TestWarningsAlwaysShown(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	logger.With("section", "backend").Warn("careful")
	assert.Contains(t, buf.String(), "careful")
}

func TestSetLevel(t *testing.T) {
	previous := Level()
	defer SetLevel(previous)

	SetLevel(slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, Level())
	assert.True(t, DefaultLogger.Enabled(context.Background(), slog.LevelDebug))
}
