package intent

import (
	"regexp"
	"strings"
)

// name matches a team fragment: letters (including Turkish letters and the
// combining dot lower-casing leaves behind) and whitespace.
const name = `([\p{L}\p{M}\s]+)`

// Matcher recognizes one intent. Keywords gate the matcher; Pattern extracts
// the team fragments from its capture groups in order.
type Matcher struct {
	Kind     Kind
	Keywords []string
	Pattern  *regexp.Regexp
}

// Matchers in evaluation order.
var Matchers = []Matcher{
	{
		Kind:     StatsLookup,
		Keywords: []string{"stats", "statistics"},
		Pattern:  regexp.MustCompile(`(?:stats|statistics).*?(?:for|of)\s+` + name),
	},
	{
		Kind:     Comparison,
		Keywords: []string{"compare", "vs", "versus"},
		Pattern:  regexp.MustCompile(`(?:compare|vs|versus)\s+` + name + `\s+(?:and|vs|versus)\s+` + name),
	},
	{
		Kind:     FormAnalysis,
		Keywords: []string{"form"},
		Pattern:  regexp.MustCompile(`form.*?(?:for|of)\s+` + name),
	},
}

// Triggered reports whether any keyword occurs in text as a substring.
func (m Matcher) Triggered(text string) bool {
	for _, kw := range m.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Match applies the pattern to lower-cased text. It fails when the pattern
// does not match or a captured fragment is blank.
func (m Matcher) Match(text string) (Intent, bool) {
	groups := m.Pattern.FindStringSubmatch(text)
	if groups == nil {
		return Intent{}, false
	}
	frags := make([]string, 0, 2)
	for _, g := range groups[1:] {
		f := cleanFragment(g)
		if f == "" {
			return Intent{}, false
		}
		frags = append(frags, f)
	}

	in := Intent{Kind: m.Kind, Team: frags[0]}
	if len(frags) > 1 {
		in.Opponent = frags[1]
	}
	return in, true
}
