package seed

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/provider"
)

const feed = `[
  {"year": "23/24", "teams": [
    {"id": 1, "name": "Galatasaray", "statistics": {"matches": 38, "goalsScored": 92, "goalsConceded": 26, "assists": 64, "cleanSheets": 17, "averageBallPossession": 58.4, "avgRating": 7.12, "bigChances": 120, "bigChancesMissed": 55, "shotsOnTarget": 240}},
    {"id": 2, "name": "Fenerbahçe", "statistics": {"matches": 38, "goals_scored": 99, "goals_conceded": 31}}
  ]},
  {"year": "24/25", "teams": [
    {"id": 1, "name": "Galatasaray", "statistics": {"matches": 34, "goalsScored": {"total": 84}, "mysteryStat": 3}}
  ]}
]`

func openTestDB(t *testing.T) *db.SQLite {
	t.Helper()
	ctx := context.Background()
	s, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "league.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, db.ApplySchema(ctx, s))
	return s
}

func decode(t *testing.T, doc string) []provider.Season {
	t.Helper()
	seasons, err := provider.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return seasons
}

func logger() *slog.Logger { return logging.Discard() }

func TestImportFeed(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	result, err := Import(ctx, s, decode(t, feed), logger())
	require.NoError(t, err)

	assert.Equal(t, 2, result.SeasonsUpserted)
	assert.Equal(t, 3, result.TeamsUpserted)
	assert.Equal(t, 3, result.StatisticsUpserted)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `unknown statistic "mysteryStat"`)

	rows, err := s.Query(ctx, `SELECT t.name, s.year, ts.goals_scored, ts.average_ball_possession
		FROM team_statistics ts
		JOIN teams t ON ts.team_id = t.id
		JOIN seasons s ON ts.season_id = s.id
		ORDER BY s.year, t.id`)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, db.Row{"Galatasaray", "23/24", int64(92), 58.4}, rows[0])
	assert.Equal(t, db.Row{"Fenerbahçe", "23/24", int64(99), 0.0}, rows[1])
	assert.Equal(t, db.Row{"Galatasaray", "24/25", int64(84), 0.0}, rows[2])
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	seasons := decode(t, feed)

	_, err := Import(ctx, s, seasons, logger())
	require.NoError(t, err)
	_, err = Import(ctx, s, seasons, logger())
	require.NoError(t, err)

	for table, want := range map[string]int64{"seasons": 2, "teams": 2, "team_statistics": 3} {
		rows, err := s.Query(ctx, "SELECT COUNT(*) FROM "+table)
		require.NoError(t, err)
		assert.Equal(t, want, rows[0][0], table)
	}
}

func TestImportRefreshesTeamNames(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	_, err := Import(ctx, s, decode(t, `[{"year":"24/25","teams":[{"id":7,"name":"Besiktas","statistics":{}}]}]`), logger())
	require.NoError(t, err)
	_, err = Import(ctx, s, decode(t, `[{"year":"24/25","teams":[{"id":7,"name":"Beşiktaş","statistics":{}}]}]`), logger())
	require.NoError(t, err)

	rows, err := s.Query(ctx, "SELECT name FROM teams WHERE id = 7")
	require.NoError(t, err)
	assert.Equal(t, []db.Row{{"Beşiktaş"}}, rows)
}

func TestImportSkipsInvalidItems(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	doc := `[
	  {"year": "2024", "teams": [{"id": 1, "name": "Galatasaray", "statistics": {"matches": 1}}]},
	  {"year": "24/25", "teams": [
	    {"id": 0, "name": "Nameless"},
	    {"id": 2, "name": "Fenerbahçe", "statistics": {"matches": 30, "goalsScored": -4}},
	    {"id": 3, "name": "Trabzonspor", "statistics": {"matches": "many"}},
	    {"id": 4, "name": "Samsunspor", "statistics": {"matches": 30}}
	  ]}
	]`
	result, err := Import(ctx, s, decode(t, doc), logger())
	require.NoError(t, err)

	assert.Equal(t, 1, result.SeasonsUpserted)
	assert.Equal(t, 3, result.TeamsUpserted)
	assert.Equal(t, 1, result.StatisticsUpserted)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], `season "2024"`)
	assert.Contains(t, result.Errors[1], "id and name are required")
	assert.Contains(t, result.Errors[2], "negative value")
	assert.Contains(t, result.Errors[3], "not a number")
	assert.Equal(t, "seasons=1 teams=3 team_statistics=1 errors=4", result.Summary())
}

func TestImportRollsBackOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := openTestDB(t)

	_, err := Import(ctx, s, decode(t, feed), logger())
	require.Error(t, err)

	rows, err := s.Query(context.Background(), "SELECT COUNT(*) FROM seasons")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows[0][0])
}

func TestValidateStatisticsOrdersByTableColumns(t *testing.T) {
	stats, warnings, err := ValidateStatistics(map[string]any{
		"shotsOnTarget": 10,
		"matches":       3,
		"avgRating":     6.5,
		"goals_scored":  4,
		"goalsScored":   5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"matches", "goals_scored", "avg_rating", "shots_on_target"}, stats.Columns)
	assert.Equal(t, []any{int64(3), int64(5), 6.5, int64(10)}, stats.Values)
	assert.Equal(t, []string{`duplicate statistic "goals_scored"`}, warnings)
}

func TestSeedResultAdd(t *testing.T) {
	a := SeedResult{SeasonsUpserted: 1, TeamsUpserted: 2, StatisticsUpserted: 2}
	a.AddError("first")
	b := SeedResult{SeasonsUpserted: 1, TeamsUpserted: 1}
	b.AddErrorf("team %d", 9)

	a.Add(b)
	assert.Equal(t, "seasons=2 teams=3 team_statistics=2 errors=2", a.Summary())
	assert.Equal(t, []string{"first", "team 9"}, a.Errors)
}
