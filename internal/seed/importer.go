package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/provider"
	"github.com/albapepper/scoracle-assistant/internal/schema"
)

// Statistics is a validated statistics record: allow-listed columns in a
// stable order and their typed values.
type Statistics struct {
	Columns []string
	Values  []any
}

// ValidateStatistics resolves raw feed keys against the schema. Unknown keys
// are reported and dropped; a non-numeric or negative value rejects the whole
// record.
func ValidateStatistics(raw map[string]any) (Statistics, []string, error) {
	var (
		stats    Statistics
		warnings []string
		seen     = map[string]bool{}
	)
	keys := schema.SortedKeys(raw)
	resolved := make(map[string]any, len(keys))
	for _, key := range keys {
		m, ok := schema.Lookup(key)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown statistic %q", key))
			continue
		}
		if seen[m.Column] {
			warnings = append(warnings, fmt.Sprintf("duplicate statistic %q", key))
			continue
		}
		seen[m.Column] = true

		v, ok := provider.ExtractValue(raw[key])
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return Statistics{}, warnings, fmt.Errorf("statistic %q: not a number", key)
		}
		if v < 0 {
			return Statistics{}, warnings, fmt.Errorf("statistic %q: negative value %v", key, v)
		}
		if m.Kind == schema.Integer {
			resolved[m.Column] = int64(math.Round(v))
		} else {
			resolved[m.Column] = v
		}
	}

	for _, col := range schema.Columns() {
		if v, ok := resolved[col]; ok {
			stats.Columns = append(stats.Columns, col)
			stats.Values = append(stats.Values, v)
		}
	}
	sort.Strings(warnings)
	return stats, warnings, nil
}

// Import writes seasons, then teams, then their statistics, in one
// transaction. Invalid items are skipped and listed in the result; a
// database error rolls the whole import back.
func Import(ctx context.Context, database db.Database, seasons []provider.Season, logger *slog.Logger) (SeedResult, error) {
	var result SeedResult
	d := database.Dialect()

	err := database.InTx(ctx, func(tx db.Tx) error {
		result = SeedResult{}
		for _, season := range seasons {
			if !provider.ValidYear(season.Year) {
				result.AddErrorf("season %q: year must be YY/YY", season.Year)
				continue
			}
			seasonID, err := UpsertSeason(ctx, tx, d, season.Year)
			if err != nil {
				return err
			}
			result.SeasonsUpserted++
			logger.Info("Importing season", "year", season.Year, "teams", len(season.Teams))

			for _, team := range season.Teams {
				if team.ID <= 0 || team.Name == "" {
					result.AddErrorf("season %s: team %d %q: id and name are required", season.Year, team.ID, team.Name)
					continue
				}
				if err := UpsertTeam(ctx, tx, d, team.ID, team.Name); err != nil {
					return err
				}
				result.TeamsUpserted++

				stats, warnings, err := ValidateStatistics(team.Statistics)
				for _, w := range warnings {
					result.AddErrorf("season %s: team %s: %s", season.Year, team.Name, w)
				}
				if err != nil {
					result.AddErrorf("season %s: team %s: %v", season.Year, team.Name, err)
					continue
				}
				if err := UpsertTeamStatistics(ctx, tx, d, team.ID, seasonID, stats); err != nil {
					return err
				}
				result.StatisticsUpserted++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("import: %w", err)
	}
	return result, nil
}
