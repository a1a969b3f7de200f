// Package intent classifies a free-text football question into one of a
// closed set of intents and extracts the team fragments and season it names.
package intent

import "strings"

// Kind tags an Intent.
type Kind int

const (
	Unknown Kind = iota
	StatsLookup
	Comparison
	FormAnalysis
)

func (k Kind) String() string {
	switch k {
	case StatsLookup:
		return "stats"
	case Comparison:
		return "comparison"
	case FormAnalysis:
		return "form"
	default:
		return "unknown"
	}
}

// Intent is the parsed form of a question. Team and Opponent are lower-case
// name fragments resolved later by a fuzzy match; Season is "" when the
// question names none.
type Intent struct {
	Kind     Kind   `json:"kind"`
	Team     string `json:"team,omitempty"`
	Opponent string `json:"opponent,omitempty"`
	Season   string `json:"season,omitempty"`
}

// Parse lower-cases text and runs Matchers in order. The first matcher whose
// keyword appears decides the result: if its pattern then fails the question
// is Unknown, later matchers are not consulted.
func Parse(text string) Intent {
	lower := strings.ToLower(text)
	season := ExtractSeason(lower)

	for _, m := range Matchers {
		if !m.Triggered(lower) {
			continue
		}
		in, ok := m.Match(lower)
		if !ok {
			return Intent{Kind: Unknown, Season: season}
		}
		in.Season = season
		return in
	}
	return Intent{Kind: Unknown, Season: season}
}
