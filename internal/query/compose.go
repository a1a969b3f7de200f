package query

import (
	"fmt"
	"math"

	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/provider"
)

// Fixed replies.
const (
	NoStatsData      = "No data found for the specified team and season."
	NoComparisonData = "Could not find data for both teams in the specified season."
	NoFormData       = "No form data found for the specified team and season."

	HelpText = "I'm sorry, I didn't understand your question. You can ask about:\n" +
		"1. Team stats (e.g., 'Show stats for Galatasaray')\n" +
		"2. Compare teams (e.g., 'Compare Galatasaray and Fenerbahce')\n" +
		"3. Team form (e.g., 'Show form for Galatasaray')\n" +
		"You can also specify a season (e.g., 'Show stats for Galatasaray in 24/25')"
)

// Row layout: name, year, matches, goals_scored, goals_conceded, assists,
// clean_sheets, average_ball_possession, avg_rating.
func composeStats(rows []db.Row) string {
	if len(rows) == 0 {
		return NoStatsData
	}
	r := rows[0]
	scored, conceded := integer(r, 3), integer(r, 4)
	return fmt.Sprintf("%s in %s season:\n"+
		"• Played %d matches\n"+
		"• Scored %d goals and conceded %d (difference: %d)\n"+
		"• Made %d assists\n"+
		"• Kept %d clean sheets\n"+
		"• Average possession: %.1f%%\n"+
		"• Average rating: %.2f",
		text(r, 0), text(r, 1),
		integer(r, 2),
		scored, conceded, scored-conceded,
		integer(r, 5),
		integer(r, 6),
		number(r, 7),
		number(r, 8),
	)
}

// Row layout: name, year, goals_scored, goals_conceded, assists,
// average_ball_possession, avg_rating. Two rows naming two different teams
// are required.
func composeComparison(rows []db.Row) string {
	if len(rows) != 2 || text(rows[0], 0) == text(rows[1], 0) {
		return NoComparisonData
	}
	a, b := rows[0], rows[1]
	return fmt.Sprintf("Comparison between %s and %s in %s season:\n"+
		"Goals scored: %d vs %d\n"+
		"Goals conceded: %d vs %d\n"+
		"Assists: %d vs %d\n"+
		"Possession: %.1f%% vs %.1f%%\n"+
		"Average rating: %.2f vs %.2f",
		text(a, 0), text(b, 0), text(a, 1),
		integer(a, 2), integer(b, 2),
		integer(a, 3), integer(b, 3),
		integer(a, 4), integer(b, 4),
		number(a, 5), number(b, 5),
		number(a, 6), number(b, 6),
	)
}

// Row layout: name, year, matches, goals_scored, goals_conceded, big_chances,
// big_chances_missed, shots_on_target, avg_rating.
func composeForm(rows []db.Row) string {
	if len(rows) == 0 {
		return NoFormData
	}
	r := rows[0]
	return fmt.Sprintf("%s's form analysis for %s season:\n"+
		"• Scoring efficiency: %.1f%% of big chances converted\n"+
		"• Created %d big chances, missed %d\n"+
		"• %d shots on target in %d matches\n"+
		"• Team's average rating: %.2f",
		text(r, 0), text(r, 1),
		ConversionRate(number(r, 3), number(r, 5)),
		integer(r, 5), integer(r, 6),
		integer(r, 7), integer(r, 2),
		number(r, 8),
	)
}

// ConversionRate is goals per big chance as a percentage; 0 when no big
// chances were created.
func ConversionRate(goals, bigChances float64) float64 {
	if bigChances <= 0 {
		return 0
	}
	return goals / bigChances * 100
}

// PerMatch divides total by matches; 0 when no matches were played.
func PerMatch(total, matches float64) float64 {
	if matches <= 0 {
		return 0
	}
	return total / matches
}

func text(r db.Row, i int) string {
	if i >= len(r) || r[i] == nil {
		return ""
	}
	switch v := r[i].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func number(r db.Row, i int) float64 {
	if i >= len(r) {
		return 0
	}
	f, _ := provider.ExtractValue(r[i])
	return f
}

func integer(r db.Row, i int) int64 {
	return int64(math.Round(number(r, i)))
}
