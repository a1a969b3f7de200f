package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", "json")

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Info("answered", "intent", "stats_lookup")

	assert.Contains(t, buf.String(), `"intent":"stats_lookup"`)
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug", "")

	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Debug("plan", "team", "galatasaray")

	assert.Contains(t, buf.String(), "team=galatasaray")
}
