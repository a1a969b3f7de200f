// Package schema is the allow-list of team statistic columns and the DDL for
// the seasons / teams / team_statistics tables. Anything that interpolates a
// column name into SQL must resolve it here first.
package schema

import (
	"sort"
	"strings"
	"unicode"
)

// Kind is the storage type of a metric.
type Kind int

const (
	Integer Kind = iota
	Real
)

// Metric describes one column of team_statistics.
type Metric struct {
	Column string // snake_case column name
	Source string // camelCase key used by the import JSON
	Kind   Kind
}

// Metrics lists every statistic column in table order. The first ten are the
// columns the query templates read.
var Metrics = []Metric{
	{"matches", "matches", Integer},
	{"goals_scored", "goalsScored", Integer},
	{"goals_conceded", "goalsConceded", Integer},
	{"assists", "assists", Integer},
	{"clean_sheets", "cleanSheets", Integer},
	{"average_ball_possession", "averageBallPossession", Real},
	{"avg_rating", "avgRating", Real},
	{"big_chances", "bigChances", Integer},
	{"big_chances_missed", "bigChancesMissed", Integer},
	{"shots_on_target", "shotsOnTarget", Integer},
	{"shots", "shots", Integer},
	{"shots_off_target", "shotsOffTarget", Integer},
	{"corners", "corners", Integer},
	{"fouls", "fouls", Integer},
	{"yellow_cards", "yellowCards", Integer},
	{"red_cards", "redCards", Integer},
	{"saves", "saves", Integer},
	{"tackles", "tackles", Integer},
	{"interceptions", "interceptions", Integer},
	{"accurate_passes", "accuratePasses", Integer},
	{"total_passes", "totalPasses", Integer},
	{"penalty_goals", "penaltyGoals", Integer},
	{"own_goals", "ownGoals", Integer},
}

var byKey = func() map[string]Metric {
	m := make(map[string]Metric, len(Metrics)*2)
	for _, metric := range Metrics {
		m[metric.Column] = metric
		m[metric.Source] = metric
	}
	return m
}()

// Lookup resolves a statistic key (snake_case column or camelCase source key)
// to its metric. Unknown keys return false and must not reach SQL.
func Lookup(key string) (Metric, bool) {
	if m, ok := byKey[key]; ok {
		return m, true
	}
	m, ok := byKey[toSnake(key)]
	return m, ok
}

// Columns returns the allow-listed statistic column names in table order.
func Columns() []string {
	out := make([]string, len(Metrics))
	for i, m := range Metrics {
		out[i] = m.Column
	}
	return out
}

// IsIdentifier reports whether name is a known table or column identifier.
func IsIdentifier(name string) bool {
	if _, ok := tables[name]; ok {
		return true
	}
	if _, ok := keyColumns[name]; ok {
		return true
	}
	m, ok := byKey[name]
	return ok && m.Column == name
}

// SortedKeys returns the keys of a statistics map in a stable order.
func SortedKeys(stats map[string]any) []string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var tables = map[string]struct{}{
	"seasons":         {},
	"teams":           {},
	"team_statistics": {},
}

var keyColumns = map[string]struct{}{
	"id":        {},
	"year":      {},
	"name":      {},
	"team_id":   {},
	"season_id": {},
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
