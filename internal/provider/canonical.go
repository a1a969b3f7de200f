// Package provider defines the canonical league feed that the importer
// consumes. A feed is a JSON list of seasons, each carrying its teams and
// their season statistics:
//
//	[{"year": "24/25", "teams": [{"id": 1, "name": "Galatasaray",
//	  "statistics": {"matches": 38, "goalsScored": 92, ...}}]}]
//
// Statistic keys may be camelCase or snake_case; the importer resolves them
// against the schema allow-list.
package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
)

// Season is one league season in the feed.
type Season struct {
	Year  string `json:"year"` // "YY/YY"
	Teams []Team `json:"teams"`
}

// Team is a club and its statistics for the enclosing season.
type Team struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Statistics map[string]any `json:"statistics"`
}

var yearPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// ValidYear reports whether year has the YY/YY season format.
func ValidYear(year string) bool {
	return yearPattern.MatchString(year)
}

// Decode reads a feed. Numbers are kept as json.Number so integer metrics
// are not routed through float64.
func Decode(r io.Reader) ([]Season, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var seasons []Season
	if err := dec.Decode(&seasons); err != nil {
		return nil, fmt.Errorf("decode league feed: %w", err)
	}
	return seasons, nil
}
