package sqlbuild

import (
	"fmt"
	"strings"

	"github.com/albapepper/scoracle-assistant/internal/schema"
)

// CreateTables returns the CREATE TABLE statements for seasons, teams and
// team_statistics in dependency order. Statements are idempotent. Team ids
// come from the import feed; season and statistic ids are generated.
func CreateTables(d Dialect) []string {
	pk := "SERIAL PRIMARY KEY"
	realType := "DOUBLE PRECISION"
	if d == SQLite {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
		realType = "REAL"
	}

	cols := []string{
		"id " + pk,
		"team_id INTEGER NOT NULL REFERENCES teams(id)",
		"season_id INTEGER NOT NULL REFERENCES seasons(id)",
	}
	for _, m := range schema.Metrics {
		typ := "INTEGER"
		if m.Kind == schema.Real {
			typ = realType
		}
		cols = append(cols, fmt.Sprintf("%s %s NOT NULL DEFAULT 0 CHECK (%s >= 0)", m.Column, typ, m.Column))
	}
	cols = append(cols, "UNIQUE (team_id, season_id)")

	return []string{
		"CREATE TABLE IF NOT EXISTS seasons (id " + pk + ", year VARCHAR(5) NOT NULL UNIQUE)",
		"CREATE TABLE IF NOT EXISTS teams (id INTEGER PRIMARY KEY, name VARCHAR(100) NOT NULL)",
		"CREATE TABLE IF NOT EXISTS team_statistics (\n\t" + strings.Join(cols, ",\n\t") + "\n)",
		"CREATE INDEX IF NOT EXISTS idx_team_statistics_season ON team_statistics (season_id)",
	}
}
