// Package query turns a classified intent into a parameterized statement and
// composes the fixed-text answer from the rows it returns.
package query

import (
	"context"
	"log/slog"
	"strings"

	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/intent"
	"github.com/albapepper/scoracle-assistant/internal/metrics"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

// Plan is a rendered template: the statement, its bound arguments and the
// composer for its rows.
type Plan struct {
	Statement string
	Args      []any
	Compose   func(rows []db.Row) string

	fragments []string
}

// Engine renders templates for one dialect.
type Engine struct {
	dialect sqlbuild.Dialect
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func NewEngine(dialect sqlbuild.Dialect, logger *slog.Logger, rec *metrics.Recorder) *Engine {
	return &Engine{dialect: dialect, logger: logger, metrics: rec}
}

const fromJoins = `
FROM team_statistics ts
JOIN teams t ON ts.team_id = t.id
JOIN seasons s ON ts.season_id = s.id`

// Plan renders the template for in. It returns false for Unknown.
func (e *Engine) Plan(in intent.Intent) (Plan, bool) {
	switch in.Kind {
	case intent.StatsLookup:
		return e.single(in, []string{
			"ts.matches", "ts.goals_scored", "ts.goals_conceded", "ts.assists",
			"ts.clean_sheets", "ts.average_ball_possession", "ts.avg_rating",
		}, composeStats), true
	case intent.FormAnalysis:
		return e.single(in, []string{
			"ts.matches", "ts.goals_scored", "ts.goals_conceded", "ts.big_chances",
			"ts.big_chances_missed", "ts.shots_on_target", "ts.avg_rating",
		}, composeForm), true
	case intent.Comparison:
		return e.comparison(in), true
	default:
		return Plan{}, false
	}
}

// Answer plans in, runs it and composes the reply. Fragments that match
// more than one team are flagged but still answered from the most recent
// row.
func (e *Engine) Answer(ctx context.Context, r db.Runner, in intent.Intent) (string, Plan, bool) {
	plan, ok := e.Plan(in)
	if !ok {
		return "", Plan{}, false
	}
	rows := r.Run(ctx, plan.Statement, plan.Args...)
	e.flagAmbiguous(ctx, r, plan.fragments)
	return plan.Compose(rows), plan, true
}

func (e *Engine) single(in intent.Intent, cols []string, compose func([]db.Row) string) Plan {
	args := sqlbuild.NewArgs(e.dialect)
	var b strings.Builder
	b.WriteString("SELECT t.name, s.year, " + strings.Join(cols, ", "))
	b.WriteString(fromJoins)
	b.WriteString("\nWHERE " + e.matchName(args, in.Team))
	if in.Season != "" {
		b.WriteString("\nAND s.year = " + args.Add(in.Season))
	}
	b.WriteString("\nORDER BY s.year DESC LIMIT 1")

	return Plan{
		Statement: b.String(),
		Args:      args.Values(),
		Compose:   compose,
		fragments: []string{in.Team},
	}
}

func (e *Engine) comparison(in intent.Intent) Plan {
	args := sqlbuild.NewArgs(e.dialect)
	var b strings.Builder
	b.WriteString("SELECT t.name, s.year, ts.goals_scored, ts.goals_conceded, ts.assists, ts.average_ball_possession, ts.avg_rating")
	b.WriteString(fromJoins)
	b.WriteString("\nWHERE (" + e.matchName(args, in.Team))
	b.WriteString(" OR " + e.matchName(args, in.Opponent) + ")")
	if in.Season != "" {
		b.WriteString("\nAND s.year = " + args.Add(in.Season))
	}
	b.WriteString("\nORDER BY s.year DESC, t.name LIMIT 2")

	return Plan{
		Statement: b.String(),
		Args:      args.Values(),
		Compose:   composeComparison,
		fragments: []string{in.Team, in.Opponent},
	}
}

func (e *Engine) flagAmbiguous(ctx context.Context, r db.Runner, fragments []string) {
	for _, frag := range fragments {
		args := sqlbuild.NewArgs(e.dialect)
		stmt := "SELECT t.name FROM teams t WHERE " + e.matchName(args, frag) + " ORDER BY t.name"
		rows := r.Run(ctx, stmt, args.Values()...)
		if len(rows) < 2 {
			continue
		}
		names := make([]string, len(rows))
		for i, row := range rows {
			names[i] = text(row, 0)
		}
		e.logger.Warn("ambiguous team fragment", "fragment", frag, "matches", names)
		e.metrics.RecordAmbiguousMatch()
	}
}

// matchName binds fragment and returns a case-insensitive containment test
// on t.name.
func (e *Engine) matchName(args *sqlbuild.Args, fragment string) string {
	return e.dialect.Fold("t.name") + " LIKE " + args.Add(sqlbuild.Contains(fragment))
}
