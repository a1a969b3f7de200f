package sqlbuild

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldFunction is the SQL name of the case-folding function registered on
// embedded connections.
const FoldFunction = "fold"

// combining dot above, left behind by lower-casing "İ"
const dotAbove = '\u0307'

// Fold lower-cases s with Unicode rules and drops the dot that lower-casing
// a dotted capital I leaves behind, so "İstanbul" folds to "istanbul". The
// result is NFC.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r == dotAbove
	})), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Fold wraps the SQL expression expr in the dialect's case-folding call.
// SQLite's built-in LOWER only handles ASCII, so embedded stores go through
// the registered FoldFunction instead.
func (d Dialect) Fold(expr string) string {
	if d == SQLite {
		return FoldFunction + "(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}

// Contains returns the LIKE pattern matching fragment anywhere in a folded
// value.
func Contains(fragment string) string {
	return "%" + Fold(strings.TrimSpace(fragment)) + "%"
}
