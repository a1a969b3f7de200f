package query

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

// DefaultTrendSeasons is how many seasons GoalTrend reads when no limit is
// given.
const DefaultTrendSeasons = 5

// TrendPoint is one season of a team's scoring record.
type TrendPoint struct {
	Team             string  `json:"team"`
	Season           string  `json:"season"`
	Matches          int64   `json:"matches"`
	GoalsFor         int64   `json:"goals_for"`
	GoalsAgainst     int64   `json:"goals_against"`
	GoalDifference   int64   `json:"goal_difference"`
	GoalsPerMatch    float64 `json:"goals_per_match"`
	ConcededPerMatch float64 `json:"conceded_per_match"`
}

// Change is the goal difference swing from one season to the next.
type Change struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Delta int64  `json:"delta"`
}

func (c Change) String() string {
	sign := ""
	if c.Delta > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s → %s: %s%d", c.From, c.To, sign, c.Delta)
}

// Trend is a team's most recent seasons, newest first.
type Trend struct {
	Points []TrendPoint `json:"points"`
}

// Changes lists season-to-season goal difference changes, oldest pair last.
func (t Trend) Changes() []Change {
	if len(t.Points) < 2 {
		return nil
	}
	out := make([]Change, 0, len(t.Points)-1)
	for i := 0; i < len(t.Points)-1; i++ {
		cur, prev := t.Points[i], t.Points[i+1]
		out = append(out, Change{From: prev.Season, To: cur.Season, Delta: cur.GoalDifference - prev.GoalDifference})
	}
	return out
}

// GoalTrend reads up to limit recent seasons for the team matching fragment.
// When the fragment matches several teams only the team with the most recent
// season is kept.
func (e *Engine) GoalTrend(ctx context.Context, r db.Runner, fragment string, limit int) Trend {
	if limit <= 0 {
		limit = DefaultTrendSeasons
	}
	args := sqlbuild.NewArgs(e.dialect)
	var b strings.Builder
	b.WriteString("SELECT t.name, s.year, ts.matches, ts.goals_scored, ts.goals_conceded")
	b.WriteString(fromJoins)
	b.WriteString("\nWHERE " + e.matchName(args, fragment))
	b.WriteString("\nORDER BY s.year DESC, t.name")

	rows := r.Run(ctx, b.String(), args.Values()...)

	var trend Trend
	for _, row := range rows {
		name := text(row, 0)
		if len(trend.Points) > 0 && name != trend.Points[0].Team {
			continue
		}
		matches := number(row, 2)
		scored, conceded := number(row, 3), number(row, 4)
		trend.Points = append(trend.Points, TrendPoint{
			Team:             name,
			Season:           text(row, 1),
			Matches:          integer(row, 2),
			GoalsFor:         integer(row, 3),
			GoalsAgainst:     integer(row, 4),
			GoalDifference:   integer(row, 3) - integer(row, 4),
			GoalsPerMatch:    round2(PerMatch(scored, matches)),
			ConcededPerMatch: round2(PerMatch(conceded, matches)),
		})
		if len(trend.Points) == limit {
			break
		}
	}
	return trend
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
