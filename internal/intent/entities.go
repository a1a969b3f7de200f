package intent

import (
	"regexp"
	"strings"
)

var seasonPattern = regexp.MustCompile(`(\d{2}/\d{2})`)

// connectors are words a season phrase leaves hanging off the end of a team
// fragment, as in "stats for galatasaray in 24/25".
var connectors = map[string]bool{
	"in":     true,
	"during": true,
	"for":    true,
	"of":     true,
	"the":    true,
	"season": true,
}

// ExtractSeason returns the first YY/YY token in text, or "" when there is
// none.
func ExtractSeason(text string) string {
	if m := seasonPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// cleanFragment trims a captured team fragment and drops trailing connector
// words. The last remaining word is never dropped.
func cleanFragment(s string) string {
	words := strings.Fields(s)
	for len(words) > 1 && connectors[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
