package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-assistant/internal/assistant"
	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/history"
	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/query"
)

func TestRenderTrend(t *testing.T) {
	out := renderTrend(query.Trend{Points: []query.TrendPoint{
		{Team: "Galatasaray", Season: "24/25", Matches: 34, GoalsFor: 84, GoalsAgainst: 28, GoalDifference: 56, GoalsPerMatch: 2.47, ConcededPerMatch: 0.82},
		{Team: "Galatasaray", Season: "23/24", Matches: 38, GoalsFor: 92, GoalsAgainst: 26, GoalDifference: 66, GoalsPerMatch: 2.42, ConcededPerMatch: 0.68},
	}})

	assert.Contains(t, out, "Galatasaray Goal Statistics Across Seasons:")
	assert.Contains(t, out, "24/25")
	assert.Contains(t, out, "2.47")
	assert.Contains(t, out, "23/24 → 24/25: -10")
}

func TestRenderHistory(t *testing.T) {
	out := renderHistory([]history.Entry{{
		Question:  "Show stats for Galatasaray",
		Intent:    "stats",
		Path:      "template",
		CreatedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "Show stats for Galatasaray")
	assert.Contains(t, out, "template")
}

func TestChatLoop(t *testing.T) {
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "league.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, db.ApplySchema(ctx, store))

	a, err := assistant.New(ctx, store, assistant.Options{}, logging.Discard())
	require.NoError(t, err)

	in := strings.NewReader("\nShow stats for Nobody\nasdkjasd\nQUIT\nShow stats for Galatasaray\n")
	var out bytes.Buffer
	require.NoError(t, chatLoop(ctx, a, in, &out, &options{}))

	text := out.String()
	assert.Contains(t, text, query.NoStatsData)
	assert.Contains(t, text, query.HelpText)
	assert.True(t, strings.HasSuffix(text, "Goodbye!\n"))
	assert.Len(t, a.History().Latest(0), 2)
}

func TestPrintAnswer(t *testing.T) {
	ans := assistant.Answer{Text: "hello", Statement: "SELECT 1", Path: assistant.PathTemplate}

	var out bytes.Buffer
	require.NoError(t, printAnswer(&out, ans, &options{showSQL: true}))
	assert.Contains(t, out.String(), "hello\n")
	assert.Contains(t, out.String(), "SELECT 1")

	out.Reset()
	require.NoError(t, printAnswer(&out, ans, &options{asJSON: true}))
	assert.Contains(t, out.String(), `"answer": "hello"`)
}
