package generative

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/llm"
	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

type call struct {
	system, user string
	opts         llm.Options
}

type fakeBackend struct {
	replies []string
	err     error
	calls   []call
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Complete(_ context.Context, system, user string, opts llm.Options) (string, error) {
	f.calls = append(f.calls, call{system, user, opts})
	if f.err != nil {
		return "", f.err
	}
	i := len(f.calls) - 1
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", nil
}

type fakeRunner struct {
	rows  []db.Row
	stmts []string
}

func (f *fakeRunner) Run(_ context.Context, stmt string, _ ...any) []db.Row {
	f.stmts = append(f.stmts, stmt)
	return f.rows
}

var columns = []string{"id", "team_id", "season_id", "matches", "goals_scored"}

func newTestEngine(b llm.Backend) *Engine {
	return NewEngine(b, columns, sqlbuild.Postgres, Config{QueryMaxTokens: 512, NarrationMaxTokens: 2000}, logging.Discard())
}

func TestGenerateQueryUsesSchemaAndTemperatureZero(t *testing.T) {
	backend := &fakeBackend{replies: []string{"```sql\nSELECT t.name FROM teams t\n```"}}

	stmt, err := newTestEngine(backend).GenerateQuery(context.Background(), "Which team scored the most?")
	require.NoError(t, err)
	assert.Equal(t, "SELECT t.name FROM teams t", stmt)

	require.Len(t, backend.calls, 1)
	c := backend.calls[0]
	assert.Contains(t, c.system, "id, team_id, season_id, matches, goals_scored")
	assert.Contains(t, c.system, "YY/YY")
	assert.Contains(t, c.user, "team_statistics.team_id references teams.id")
	assert.Contains(t, c.user, "team_statistics.season_id references seasons.id")
	assert.Contains(t, c.user, "Which team scored the most?")
	require.NotNil(t, c.opts.Temperature)
	assert.Zero(t, *c.opts.Temperature)
	assert.Equal(t, 512, c.opts.MaxTokens)
}

func TestGenerateQueryRejectsEmptyOutput(t *testing.T) {
	_, err := newTestEngine(&fakeBackend{replies: []string{"<think>hmm</think>"}}).GenerateQuery(context.Background(), "q")
	assert.ErrorIs(t, err, llm.ErrEmptyCompletion)
}

func TestAnswerNarratesRows(t *testing.T) {
	backend := &fakeBackend{replies: []string{
		"SELECT t.name, ts.goals_scored FROM team_statistics ts JOIN teams t ON ts.team_id = t.id",
		"Galatasaray scored 92 goals, more than anyone else.",
	}}
	runner := &fakeRunner{rows: []db.Row{{"Galatasaray", int32(92)}, {[]byte("Fenerbahce"), int32(90)}}}

	res, err := newTestEngine(backend).Answer(context.Background(), runner, "Who scored the most goals?")
	require.NoError(t, err)

	assert.Equal(t, "Galatasaray scored 92 goals, more than anyone else.", res.Answer)
	assert.Equal(t, runner.stmts[0], res.Statement)
	require.Len(t, backend.calls, 2)
	narration := backend.calls[1]
	assert.Contains(t, narration.user, "User question: Who scored the most goals?")
	assert.Contains(t, narration.user, "Query executed: "+res.Statement)
	assert.Contains(t, narration.user, `Query results: [["Galatasaray",92],["Fenerbahce",90]]`)
	assert.Nil(t, narration.opts.Temperature)
	assert.Equal(t, 2000, narration.opts.MaxTokens)
}

func TestAnswerWithNoRowsStillNarrates(t *testing.T) {
	backend := &fakeBackend{replies: []string{"SELECT * FROM teamz", "I could not find any matching data."}}

	res, err := newTestEngine(backend).Answer(context.Background(), &fakeRunner{}, "stats for nobody")
	require.NoError(t, err)
	assert.Contains(t, backend.calls[1].user, "Query results: []")
	assert.Equal(t, "I could not find any matching data.", res.Answer)
}

func TestAnswerRequiresNonEmptyNarration(t *testing.T) {
	backend := &fakeBackend{replies: []string{"SELECT 1", "   "}}
	_, err := newTestEngine(backend).Answer(context.Background(), &fakeRunner{}, "q")
	assert.ErrorIs(t, err, llm.ErrEmptyCompletion)
}

func TestAnswerPropagatesBackendErrors(t *testing.T) {
	boom := errors.New("backend down")
	_, err := newTestEngine(&fakeBackend{err: boom}).Answer(context.Background(), &fakeRunner{}, "q")
	assert.ErrorIs(t, err, boom)
}

func TestQueryPromptNamesDialect(t *testing.T) {
	assert.Contains(t, queryPrompt("q", sqlbuild.SQLite), "SQLite")
	assert.Contains(t, queryPrompt("q", sqlbuild.Postgres), "PostgreSQL")
	assert.Contains(t, queryPrompt("q", sqlbuild.SQLite), "fold(t.name) LIKE")
	assert.Contains(t, queryPrompt("q", sqlbuild.Postgres), "LOWER(t.name) LIKE")
}
