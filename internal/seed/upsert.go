package seed

import (
	"context"
	"fmt"

	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

// UpsertSeason writes a season and returns its id, existing or new.
func UpsertSeason(ctx context.Context, tx db.Tx, d sqlbuild.Dialect, year string) (int, error) {
	stmt, err := sqlbuild.Upsert{
		Table:     config.SeasonsTable,
		Columns:   []string{"year"},
		Conflict:  []string{"year"},
		Returning: "id",
	}.Build(d)
	if err != nil {
		return 0, err
	}
	id, err := tx.QueryInt(ctx, stmt, year)
	if err != nil {
		return 0, fmt.Errorf("upsert season %s: %w", year, err)
	}
	return id, nil
}

// UpsertTeam writes a team under its feed id, refreshing the name.
func UpsertTeam(ctx context.Context, tx db.Tx, d sqlbuild.Dialect, id int, name string) error {
	stmt, err := sqlbuild.Upsert{
		Table:    config.TeamsTable,
		Columns:  []string{"id", "name"},
		Conflict: []string{"id"},
	}.Build(d)
	if err != nil {
		return err
	}
	if err := tx.Exec(ctx, stmt, id, name); err != nil {
		return fmt.Errorf("upsert team %d: %w", id, err)
	}
	return nil
}

// UpsertTeamStatistics writes one (team, season) record. stats must already
// be keyed by allow-listed column names.
func UpsertTeamStatistics(ctx context.Context, tx db.Tx, d sqlbuild.Dialect, teamID, seasonID int, stats Statistics) error {
	cols := append([]string{"team_id", "season_id"}, stats.Columns...)
	args := append([]any{teamID, seasonID}, stats.Values...)

	stmt, err := sqlbuild.Upsert{
		Table:    config.TeamStatisticsTable,
		Columns:  cols,
		Conflict: []string{"team_id", "season_id"},
	}.Build(d)
	if err != nil {
		return err
	}
	if err := tx.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert statistics team=%d season=%d: %w", teamID, seasonID, err)
	}
	return nil
}
