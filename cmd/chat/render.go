package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/albapepper/scoracle-assistant/internal/history"
	"github.com/albapepper/scoracle-assistant/internal/query"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sqlStyle    = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderTrend draws the season table followed by the goal difference swings.
func renderTrend(trend query.Trend) string {
	t := newTable("Season", "Matches", "Goals For", "Goals Against", "Difference", "For/Match", "Against/Match")
	for _, p := range trend.Points {
		t.Row(
			p.Season,
			strconv.FormatInt(p.Matches, 10),
			strconv.FormatInt(p.GoalsFor, 10),
			strconv.FormatInt(p.GoalsAgainst, 10),
			strconv.FormatInt(p.GoalDifference, 10),
			fmt.Sprintf("%.2f", p.GoalsPerMatch),
			fmt.Sprintf("%.2f", p.ConcededPerMatch),
		)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(trend.Points[0].Team+" Goal Statistics Across Seasons:") + "\n")
	b.WriteString(t.Render() + "\n")
	if changes := trend.Changes(); len(changes) > 0 {
		b.WriteString("\n" + titleStyle.Render("Season-by-Season Goal Difference Change:") + "\n")
		for _, c := range changes {
			b.WriteString(c.String() + "\n")
		}
	}
	return b.String()
}

func renderHistory(entries []history.Entry) string {
	t := newTable("When", "Intent", "Path", "Question")
	for _, e := range entries {
		t.Row(e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Intent, e.Path, e.Question)
	}
	return t.Render() + "\n"
}

func renderStatement(stmt string) string {
	return sqlStyle.Render(strings.TrimSpace(stmt))
}
